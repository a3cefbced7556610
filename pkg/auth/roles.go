package auth

// Role is the front-desk role carried in the access token.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleReception    Role = "reception"
	RoleFinance      Role = "finance"
	RoleHousekeeping Role = "housekeeping"
)

// BookingRoles may create, edit, and cancel bookings.
func BookingRoles() []Role {
	return []Role{RoleAdmin, RoleReception, RoleManager}
}

// PaymentRoles may view and record payments.
func PaymentRoles() []Role {
	return []Role{RoleAdmin, RoleFinance, RoleReception, RoleManager}
}
