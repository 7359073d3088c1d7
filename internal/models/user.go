package models

// Roles a User can hold. Admin is only ever assigned directly in storage.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Role     string `json:"role" gorm:"type:varchar(16);not null;default:user"`
	Name     string `json:"name" gorm:"type:varchar(100)"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password string `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash
}

// TableName pins the table to "users".
func (User) TableName() string { return "users" }

// SessionUser is the part of a User kept in session state. It never carries the password hash.
type SessionUser struct {
	ID   uint
	Role string
	Name string
}

// IsAdmin reports whether the session user holds the admin role.
func (u *SessionUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// ToSessionUser strips the credential fields from u.
func (u *User) ToSessionUser() *SessionUser {
	return &SessionUser{ID: u.ID, Role: u.Role, Name: u.Name}
}
