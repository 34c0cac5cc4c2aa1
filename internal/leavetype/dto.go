package leavetype

import (
	"regexp"
	"strings"

	"github.com/hrportal/workforce/internal"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type CreateLeaveTypeDTO struct {
	Name               string `json:"name"`
	DefaultDaysPerYear int    `json:"default_days_per_year"`
	CarryForward       bool   `json:"carry_forward"`
	ColorHex           string `json:"color_hex"`
}

func (dto CreateLeaveTypeDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if dto.DefaultDaysPerYear < 0 {
		return internal.NewValidationFieldError("default_days_per_year", "entitlement cannot be negative", internal.ErrCodeValidationFailed)
	}
	if !colorPattern.MatchString(dto.ColorHex) {
		return internal.NewValidationFieldError("color_hex", "color must be a #RRGGBB value", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateLeaveTypeDTO struct {
	Name               *string `json:"name,omitempty"`
	DefaultDaysPerYear *int    `json:"default_days_per_year,omitempty"`
	CarryForward       *bool   `json:"carry_forward,omitempty"`
	ColorHex           *string `json:"color_hex,omitempty"`
}

func (dto UpdateLeaveTypeDTO) Validate() error {
	if dto.Name != nil && strings.TrimSpace(*dto.Name) == "" {
		return internal.NewValidationFieldError("name", "name cannot be blank", internal.ErrCodeValidationFailed)
	}
	if dto.DefaultDaysPerYear != nil && *dto.DefaultDaysPerYear < 0 {
		return internal.NewValidationFieldError("default_days_per_year", "entitlement cannot be negative", internal.ErrCodeValidationFailed)
	}
	if dto.ColorHex != nil && !colorPattern.MatchString(*dto.ColorHex) {
		return internal.NewValidationFieldError("color_hex", "color must be a #RRGGBB value", internal.ErrCodeValidationFailed)
	}
	return nil
}
