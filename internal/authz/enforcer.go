package authz

import (
	"github.com/casbin/casbin"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// Route templates as registered with gin, so c.FullPath() can be enforced directly.
const (
	routeMe            = "/api/v1/users/me"
	routeHotels        = "/api/v1/hotels"
	routeHotel         = "/api/v1/hotels/:hotelId"
	routeHotelBookings = "/api/v1/hotels/:hotelId/bookings"
	routeRooms         = "/api/v1/hotels/:hotelId/rooms"
	routeAvailable     = "/api/v1/hotels/:hotelId/rooms/available"
	routeRoom          = "/api/v1/hotels/:hotelId/rooms/:roomId"
	routeRoomBookings  = "/api/v1/hotels/:hotelId/rooms/:roomId/bookings"
	routeBooking       = "/api/v1/hotels/:hotelId/rooms/:roomId/bookings/:bookingId"
)

// defaultPolicy is the role matrix. HOTEL inherits every USER permission.
var defaultPolicy = [][]string{
	{"ADMIN", "/api/v1/*", "*"},

	{"USER", routeMe, "GET"},
	{"USER", routeHotels, "GET"},
	{"USER", routeHotel, "GET"},
	{"USER", routeHotelBookings, "GET"},
	{"USER", routeRooms, "GET"},
	{"USER", routeAvailable, "GET"},
	{"USER", routeRoom, "GET"},
	{"USER", routeRoomBookings, "GET"},
	{"USER", routeRoomBookings, "POST"},
	{"USER", routeBooking, "GET"},
	{"USER", routeBooking, "PUT"},
	{"USER", routeBooking, "DELETE"},

	{"HOTEL", routeHotel, "PUT"},
	{"HOTEL", routeRooms, "POST"},
	{"HOTEL", routeRoom, "PUT"},
	{"HOTEL", routeRoom, "DELETE"},
}

var defaultGroups = [][]string{
	{"HOTEL", "USER"},
}

// Enforcer answers "may this authority call this route".
type Enforcer struct {
	e *casbin.Enforcer
}

// NewEnforcer builds the role gate with the default policy.
func NewEnforcer() (*Enforcer, error) {
	e, err := casbin.NewEnforcerSafe(casbin.NewModel(rbacModel))
	if err != nil {
		return nil, err
	}
	e.EnableLog(false)
	for _, p := range defaultPolicy {
		e.AddPolicy(p[0], p[1], p[2])
	}
	for _, g := range defaultGroups {
		e.AddGroupingPolicy(g[0], g[1])
	}
	return &Enforcer{e: e}, nil
}

// Allowed reports whether authority may call method on the route template.
func (en *Enforcer) Allowed(authority, route, method string) (bool, error) {
	return en.e.EnforceSafe(authority, route, method)
}
