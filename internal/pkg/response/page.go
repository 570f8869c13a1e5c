package response

// PageResponse is the standard wrapper for list endpoints.
type PageResponse[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
}

// NewPageResponse is a helper to quickly create a response
func NewPageResponse[T any](items []T, page, size, total int) PageResponse[T] {
	// Handle empty slice to avoid JSON outputting null
	if items == nil {
		items = make([]T, 0)
	}

	return PageResponse[T]{
		Items: items,
		Page:  page,
		Size:  size,
		Total: total,
	}
}

// EntityResponse acknowledges a write on a single entity.
type EntityResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
