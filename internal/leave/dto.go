package leave

import (
	"strings"
	"time"

	"github.com/hrportal/workforce/internal"
)

const dateLayout = "2006-01-02"

// CreateLeaveDTO is the request payload for applying for leave. UserID is
// only honored for managers/admins filing on an employee's behalf.
type CreateLeaveDTO struct {
	UserID      *int64  `json:"user_id,omitempty"`
	LeaveTypeID int64   `json:"leave_type_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Reason      *string `json:"reason,omitempty"`
}

// Validate parses and checks the date range. total_days is never read from
// the client; it is recomputed from the parsed range.
func (dto CreateLeaveDTO) Validate() (start, end time.Time, err error) {
	if dto.LeaveTypeID <= 0 {
		return start, end, internal.NewValidationFieldError("leave_type_id", "leave type is required", internal.ErrCodeValidationFailed)
	}
	start, err = time.Parse(dateLayout, dto.StartDate)
	if err != nil {
		return start, end, internal.NewValidationFieldError("start_date", "start date must be formatted YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	end, err = time.Parse(dateLayout, dto.EndDate)
	if err != nil {
		return start, end, internal.NewValidationFieldError("end_date", "end date must be formatted YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	if end.Before(start) {
		return start, end, internal.NewValidationFieldError("end_date", "end date cannot precede start date", internal.ErrCodeInvalidDateRange)
	}
	return start, end, nil
}

type DecideLeaveDTO struct {
	Status  string  `json:"status"`
	Comment *string `json:"comment,omitempty"`
}

// Validate restricts the decision to the two terminal outcomes an approver
// may choose.
func (dto DecideLeaveDTO) Validate() (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(dto.Status))) {
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	}
	return "", internal.NewValidationFieldError("status", "status must be APPROVED or REJECTED", internal.ErrCodeInvalidStatus)
}
