package holiday

import (
	"time"
)

// Type distinguishes company-wide public holidays from optional ones an
// employee may choose to take.
type Type string

const (
	TypePublic   Type = "PUBLIC"
	TypeOptional Type = "OPTIONAL"
)

func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypePublic, TypeOptional:
		return Type(s), true
	}
	return "", false
}

// Holiday is display-only reference data: the leave day count never
// consults the calendar.
type Holiday struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Date        time.Time `json:"date" gorm:"column:date;type:date;uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Type        Type      `json:"type" gorm:"column:type;default:PUBLIC"`
	IsRecurring bool      `json:"is_recurring" gorm:"column:is_recurring;default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Holiday) TableName() string {
	return "holidays"
}
