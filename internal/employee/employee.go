package employee

import (
	"strings"
	"time"
)

// Role is the closed set of roles known to the system. Routing and
// visibility code switches exhaustively over these three values; there is
// no free-form role string anywhere past the DTO boundary.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleAdmin    Role = "ADMIN"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleEmployee:
		return RoleEmployee, true
	case RoleManager:
		return RoleManager, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// CanManage reports whether the role carries approval authority at all.
func (r Role) CanManage() bool {
	return r == RoleManager || r == RoleAdmin
}

type Employee struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;not null"`
	FullName     string     `json:"full_name" gorm:"column:full_name;not null"`
	Role         Role       `json:"role" gorm:"not null"`
	Designation  string     `json:"designation"`
	DOB          *time.Time `json:"dob,omitempty" gorm:"column:dob;type:date"`
	PhoneNumber  *string    `json:"phone_number,omitempty" gorm:"column:phone_number"`
	JoinDate     *time.Time `json:"join_date,omitempty" gorm:"column:join_date;type:date"`
	ManagerID    *int64     `json:"manager_id,omitempty" gorm:"column:manager_id"`
	IsActive     bool       `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "users"
}

func (e *Employee) IsActiveEmployee() bool {
	return e.IsActive
}

// NormalizeName matches the roster convention of storing names upper-cased.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
