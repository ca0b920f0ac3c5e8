package auth

// Capability names an action gated by account type.
type Capability string

const (
	// CapManageBookings covers the gym owner views over every booking.
	CapManageBookings Capability = "manage_bookings"
	// CapManageUsers covers the user administration endpoints.
	CapManageUsers Capability = "manage_users"
)

// Can reports whether the identity holds the capability. Admins hold all of them.
func (id Identity) Can(c Capability) bool {
	if id.IsAdmin {
		return true
	}
	switch c {
	case CapManageBookings:
		return id.Type == TypeGymOwner
	}
	return false
}
