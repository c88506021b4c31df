package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// User principal del sistema. Solo usuarios activos pueden figurar como
// responsables de un movimiento.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
}

// FullName nombre para mostrar en historial de movimientos.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
