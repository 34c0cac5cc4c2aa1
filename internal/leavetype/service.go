package leavetype

import (
	"log/slog"
	"strings"

	"github.com/hrportal/workforce/internal"
	"github.com/hrportal/workforce/internal/employee"
)

type Repository interface {
	GetAll() ([]*LeaveType, error)
	GetByID(id int64) (*LeaveType, error)
	GetByName(name string) (*LeaveType, error)
	Create(lt *LeaveType) error
	Update(lt *LeaveType) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List() ([]*LeaveType, error) {
	return s.repo.GetAll()
}

// Resolve implements the registry contract consumed by the leave lifecycle.
// Lookup failures propagate; there is no fallback reference data.
func (s *Service) Resolve(id int64) (*LeaveType, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(actor *employee.Employee, dto CreateLeaveTypeDTO) (*LeaveType, error) {
	if !actor.Role.CanManage() {
		return nil, internal.ErrNotPermitted
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByName(dto.Name); err == nil && existing != nil {
		return nil, internal.NewValidationError("a leave type with this name already exists", internal.ErrCodeValidationFailed)
	}

	lt := &LeaveType{
		Name:               strings.TrimSpace(dto.Name),
		DefaultDaysPerYear: dto.DefaultDaysPerYear,
		CarryForward:       dto.CarryForward,
		ColorHex:           dto.ColorHex,
	}
	if err := s.repo.Create(lt); err != nil {
		s.logger.Error("failed to create leave type", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("leave type created", "leave_type_id", lt.ID, "name", lt.Name, "created_by", actor.ID)
	return lt, nil
}

func (s *Service) Update(actor *employee.Employee, id int64, dto UpdateLeaveTypeDTO) (*LeaveType, error) {
	if !actor.Role.CanManage() {
		return nil, internal.ErrNotPermitted
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	lt, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if existing, err := s.repo.GetByName(name); err == nil && existing != nil && existing.ID != id {
			return nil, internal.NewValidationError("a leave type with this name already exists", internal.ErrCodeValidationFailed)
		}
		lt.Name = name
	}
	if dto.DefaultDaysPerYear != nil {
		lt.DefaultDaysPerYear = *dto.DefaultDaysPerYear
	}
	if dto.CarryForward != nil {
		lt.CarryForward = *dto.CarryForward
	}
	if dto.ColorHex != nil {
		lt.ColorHex = *dto.ColorHex
	}

	if err := s.repo.Update(lt); err != nil {
		s.logger.Error("failed to update leave type", "error", err, "leave_type_id", id)
		return nil, err
	}

	s.logger.Info("leave type updated", "leave_type_id", id, "updated_by", actor.ID)
	return lt, nil
}
