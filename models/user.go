package models

// User is the session identity returned by the mock login. It is never
// persisted.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"` // 'admin' or 'staff'
}
