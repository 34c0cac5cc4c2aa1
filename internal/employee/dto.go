package employee

import (
	"regexp"
	"strings"
	"time"

	"github.com/hrportal/workforce/internal"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const dateLayout = "2006-01-02"

type CreateEmployeeDTO struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	FullName    string  `json:"full_name"`
	Role        string  `json:"role"`
	Designation string  `json:"designation"`
	DOB         *string `json:"dob,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	JoinDate    *string `json:"join_date,omitempty"`
	ManagerID   *int64  `json:"manager_id,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (dto CreateEmployeeDTO) Validate() (Role, error) {
	if !emailPattern.MatchString(dto.Email) {
		return "", internal.NewValidationFieldError("email", "a valid email address is required", internal.ErrCodeInvalidEmail)
	}
	if strings.TrimSpace(dto.Password) == "" {
		return "", internal.NewValidationFieldError("password", "password is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.FullName) == "" {
		return "", internal.NewValidationFieldError("full_name", "full name is required", internal.ErrCodeValidationFailed)
	}
	role, ok := ParseRole(dto.Role)
	if !ok {
		return "", internal.NewValidationFieldError("role", "role must be EMPLOYEE, MANAGER or ADMIN", internal.ErrCodeInvalidRole)
	}
	for _, d := range []*string{dto.DOB, dto.JoinDate} {
		if d == nil {
			continue
		}
		if _, err := time.Parse(dateLayout, *d); err != nil {
			return "", internal.NewValidationFieldError("date", "dates must be formatted YYYY-MM-DD", internal.ErrCodeInvalidDate)
		}
	}
	return role, nil
}

func (dto CreateEmployeeDTO) ParseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

type UpdateEmployeeDTO struct {
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	FullName    *string `json:"full_name,omitempty"`
	Role        *string `json:"role,omitempty"`
	Designation *string `json:"designation,omitempty"`
	DOB         *string `json:"dob,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	JoinDate    *string `json:"join_date,omitempty"`
	ManagerID   *int64  `json:"manager_id,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (dto UpdateEmployeeDTO) Validate() error {
	if dto.Email != nil && !emailPattern.MatchString(*dto.Email) {
		return internal.NewValidationFieldError("email", "a valid email address is required", internal.ErrCodeInvalidEmail)
	}
	if dto.FullName != nil && strings.TrimSpace(*dto.FullName) == "" {
		return internal.NewValidationFieldError("full_name", "full name cannot be blank", internal.ErrCodeValidationFailed)
	}
	if dto.Role != nil {
		if _, ok := ParseRole(*dto.Role); !ok {
			return internal.NewValidationFieldError("role", "role must be EMPLOYEE, MANAGER or ADMIN", internal.ErrCodeInvalidRole)
		}
	}
	for _, d := range []*string{dto.DOB, dto.JoinDate} {
		if d == nil {
			continue
		}
		if _, err := time.Parse(dateLayout, *d); err != nil {
			return internal.NewValidationFieldError("date", "dates must be formatted YYYY-MM-DD", internal.ErrCodeInvalidDate)
		}
	}
	return nil
}
