package leave

import (
	"time"
)

// Status is the leave request state machine. PENDING and PENDING_ADMIN are
// the only decidable states; APPROVED, REJECTED and CANCELLED are terminal
// and permanent.
type Status string

const (
	StatusPending      Status = "PENDING"
	StatusPendingAdmin Status = "PENDING_ADMIN"
	StatusApproved     Status = "APPROVED"
	StatusRejected     Status = "REJECTED"
	StatusCancelled    Status = "CANCELLED"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusPendingAdmin, StatusApproved, StatusRejected, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

type LeaveRequest struct {
	ID             int64      `json:"id" gorm:"primaryKey"`
	UserID         int64      `json:"user_id" gorm:"column:user_id;not null"`
	LeaveTypeID    int64      `json:"leave_type_id" gorm:"column:leave_type_id;not null"`
	StartDate      time.Time  `json:"start_date" gorm:"column:start_date;type:date;not null"`
	EndDate        time.Time  `json:"end_date" gorm:"column:end_date;type:date;not null"`
	TotalDays      float64    `json:"total_days" gorm:"column:total_days;not null"`
	Status         Status     `json:"status" gorm:"column:status;default:PENDING"`
	Reason         *string    `json:"reason,omitempty" gorm:"column:reason"`
	ManagerComment *string    `json:"manager_comment,omitempty" gorm:"column:manager_comment"`
	ApproverID     *int64     `json:"approver_id,omitempty" gorm:"column:approver_id"`
	CreatedAt      time.Time  `json:"created_at" gorm:"column:created_at"`
	DecidedAt      *time.Time `json:"decided_at,omitempty" gorm:"column:decided_at"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// CanBeDecided reports whether an approve/reject transition is still open.
func (l *LeaveRequest) CanBeDecided() bool {
	return l.Status == StatusPending || l.Status == StatusPendingAdmin
}

// CanBeCancelled mirrors CanBeDecided: the owner may withdraw a request
// only while it is awaiting a decision.
func (l *LeaveRequest) CanBeCancelled() bool {
	return l.CanBeDecided()
}

// TotalDaysBetween counts inclusive calendar days. The count deliberately
// includes weekends and holidays; the holiday calendar is display-only.
func TotalDaysBetween(start, end time.Time) float64 {
	start = truncateToDate(start)
	end = truncateToDate(end)
	return float64(int(end.Sub(start).Hours()/24) + 1)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
