package overtime

import (
	"strings"
	"time"

	"github.com/hrportal/workforce/internal"
)

const dateLayout = "2006-01-02"

var clockLayouts = []string{"15:04:05", "15:04"}

// CreateOvertimeDTO is the request payload for claiming overtime. Times are
// same-day clock values; overnight spans are rejected.
type CreateOvertimeDTO struct {
	OTDate    string `json:"ot_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

// Validate parses the date and clock span. total_hours is never read from
// the client; it is recomputed from the parsed span.
func (dto CreateOvertimeDTO) Validate() (otDate, start, end time.Time, err error) {
	otDate, err = time.Parse(dateLayout, dto.OTDate)
	if err != nil {
		return otDate, start, end, internal.NewValidationFieldError("ot_date", "date must be formatted YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	start, err = parseClock(dto.StartTime)
	if err != nil {
		return otDate, start, end, internal.NewValidationFieldError("start_time", "start time must be formatted HH:MM or HH:MM:SS", internal.ErrCodeInvalidTimeRange)
	}
	end, err = parseClock(dto.EndTime)
	if err != nil {
		return otDate, start, end, internal.NewValidationFieldError("end_time", "end time must be formatted HH:MM or HH:MM:SS", internal.ErrCodeInvalidTimeRange)
	}
	if !end.After(start) {
		return otDate, start, end, internal.NewValidationFieldError("end_time", "end time must be after start time", internal.ErrCodeInvalidTimeRange)
	}
	if strings.TrimSpace(dto.Reason) == "" {
		return otDate, start, end, internal.NewValidationFieldError("reason", "reason is required", internal.ErrCodeReasonRequired)
	}
	return otDate, start, end, nil
}

func parseClock(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, strings.TrimSpace(s))
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

type DecideOvertimeDTO struct {
	Status  string  `json:"status"`
	Comment *string `json:"comment,omitempty"`
}

func (dto DecideOvertimeDTO) Validate() (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(dto.Status))) {
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	}
	return "", internal.NewValidationFieldError("status", "status must be APPROVED or REJECTED", internal.ErrCodeInvalidStatus)
}
