package domain

const (
	RoleHR       = "HR"
	RoleDirector = "DIRECTOR"
	RoleEmployee = "EMPLOYEE"
)

// Actor is the authenticated principal a request acts as. It is built
// once by the auth middleware and passed explicitly into every service
// call; services never consult ambient state for identity.
type Actor struct {
	UserID     string
	EmployeeID string // empty for administrative users without an employee record
	Role       string
}

// IsPrivileged reports whether the actor may perform administrative
// writes and act on behalf of other employees.
func (a Actor) IsPrivileged() bool {
	return a.Role == RoleHR || a.Role == RoleDirector
}

// Owns reports whether the actor's own employee record is employeeID.
func (a Actor) Owns(employeeID string) bool {
	return a.EmployeeID != "" && a.EmployeeID == employeeID
}

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
