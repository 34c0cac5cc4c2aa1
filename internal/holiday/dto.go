package holiday

import (
	"strings"
	"time"

	"github.com/hrportal/workforce/internal"
)

const dateLayout = "2006-01-02"

type CreateHolidayDTO struct {
	Date        string `json:"date"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	IsRecurring bool   `json:"is_recurring"`
}

func (dto CreateHolidayDTO) Validate() (date time.Time, htype Type, err error) {
	date, err = time.Parse(dateLayout, dto.Date)
	if err != nil {
		return date, htype, internal.NewValidationFieldError("date", "date must be formatted YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	if strings.TrimSpace(dto.Name) == "" {
		return date, htype, internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}

	htype = TypePublic
	if dto.Type != "" {
		parsed, ok := ParseType(strings.ToUpper(strings.TrimSpace(dto.Type)))
		if !ok {
			return date, htype, internal.NewValidationFieldError("type", "type must be PUBLIC or OPTIONAL", internal.ErrCodeValidationFailed)
		}
		htype = parsed
	}
	return date, htype, nil
}
