package overtime

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the overtime claim state machine. Unlike leave requests there is
// no admin-escalation tier: claims always enter PENDING, and admin
// visibility covers managerless owners.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), true
	}
	return "", false
}

type OvertimeClaim struct {
	ID             int64           `json:"id" gorm:"primaryKey"`
	UserID         int64           `json:"user_id" gorm:"column:user_id;not null"`
	OTDate         time.Time       `json:"ot_date" gorm:"column:ot_date;type:date;not null"`
	StartTime      string          `json:"start_time" gorm:"column:start_time;not null"`
	EndTime        string          `json:"end_time" gorm:"column:end_time;not null"`
	TotalHours     decimal.Decimal `json:"total_hours" gorm:"column:total_hours;type:numeric(5,2);not null"`
	Status         Status          `json:"status" gorm:"column:status;default:PENDING"`
	Reason         string          `json:"reason" gorm:"column:reason;not null"`
	ManagerComment *string         `json:"manager_comment,omitempty" gorm:"column:manager_comment"`
	ApproverID     *int64          `json:"approver_id,omitempty" gorm:"column:approver_id"`
	CreatedAt      time.Time       `json:"created_at" gorm:"column:created_at"`
	DecidedAt      *time.Time      `json:"decided_at,omitempty" gorm:"column:decided_at"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"column:updated_at"`
}

func (OvertimeClaim) TableName() string {
	return "overtime_claims"
}

func (o *OvertimeClaim) CanBeDecided() bool {
	return o.Status == StatusPending
}

// TotalHoursBetween converts a same-day clock span to decimal hours rounded
// to two places, so 18:00-20:30 yields exactly 2.5.
func TotalHoursBetween(start, end time.Time) decimal.Decimal {
	seconds := int64(end.Sub(start).Seconds())
	return decimal.NewFromInt(seconds).Div(decimal.NewFromInt(3600)).Round(2)
}
