package leavetype

// LeaveType is static reference data: the request lifecycle only consults it
// for existence and entitlement checks.
type LeaveType struct {
	ID                 int64  `json:"id" gorm:"primaryKey"`
	Name               string `json:"name" gorm:"uniqueIndex;not null"`
	DefaultDaysPerYear int    `json:"default_days_per_year" gorm:"column:default_days_per_year;not null"`
	CarryForward       bool   `json:"carry_forward" gorm:"column:carry_forward;default:false"`
	ColorHex           string `json:"color_hex" gorm:"column:color_hex;not null"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}
