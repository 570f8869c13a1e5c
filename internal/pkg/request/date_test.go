package request

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	var payload struct {
		CheckIn *Date `json:"checkIn"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"checkIn":"2025-06-01"}`), &payload))
	require.NotNil(t, payload.CheckIn)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), payload.CheckIn.Time)

	out, err := json.Marshal(NewDate(time.Date(2025, 6, 1, 22, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-06-01"`, string(out))
}

func TestDate_RejectsMalformed(t *testing.T) {
	for _, raw := range []string{`"2025-13-01"`, `"01/06/2025"`, `20250601`, `""`} {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(raw), &d), raw)
	}
}

func TestDate_UnmarshalParam(t *testing.T) {
	var d Date
	require.NoError(t, d.UnmarshalParam("2025-06-05"))
	assert.Equal(t, 5, d.Day())
	assert.Error(t, d.UnmarshalParam("tomorrow"))
}

func TestListParams_Normalize(t *testing.T) {
	assert.Equal(t, ListParams{Page: 0, Size: DefaultSize}, ListParams{Page: -1}.Normalize())
	assert.Equal(t, ListParams{Page: 2, Size: MaxSize}, ListParams{Page: 2, Size: 500}.Normalize())
}

func TestOffset(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		want       uint64
	}{
		{"first page", 0, 10, 0},
		{"third page", 2, 10, 20},
		{"negative page", -3, 10, 0},
		{"zero size", 4, 0, 0},
		{"largest bound page", MaxPage, MaxSize, uint64(MaxPage) * MaxSize},
		{"overflowing product", math.MaxInt64 / 10, 100, math.MaxInt64},
		{"max int page", math.MaxInt, 2, math.MaxInt64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Offset(tt.page, tt.size)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got, uint64(math.MaxInt64))
		})
	}
}
