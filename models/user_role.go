// models/user_role.go
package models

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type UserRole struct {
	ID     string `json:"id" gorm:"primaryKey;type:uuid"`
	UserID string `json:"user_id" gorm:"type:uuid;not null;index"`
	Role   string `json:"role" gorm:"type:varchar(16);not null;default:'user'"`
}
