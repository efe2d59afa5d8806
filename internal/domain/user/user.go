package user

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

// CanManagePayroll reports whether the role may generate or approve payroll.
func CanManagePayroll(r Role) bool {
	return r == RoleAdmin || r == RoleHR
}
