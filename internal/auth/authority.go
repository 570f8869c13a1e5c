package auth

// Authority is the role tag carried by every user.
type Authority string

const (
	AuthorityAdmin Authority = "ADMIN" // platform administrator
	AuthorityHotel Authority = "HOTEL" // staff of exactly one hotel
	AuthorityUser  Authority = "USER"  // guest making bookings
)

// Valid reports whether a is one of the known authorities.
func (a Authority) Valid() bool {
	switch a {
	case AuthorityAdmin, AuthorityHotel, AuthorityUser:
		return true
	}
	return false
}

func (a Authority) String() string {
	return string(a)
}
