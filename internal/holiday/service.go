package holiday

import (
	"log/slog"
	"strings"

	"github.com/hrportal/workforce/internal"
	"github.com/hrportal/workforce/internal/employee"
)

type Repository interface {
	GetAll() ([]*Holiday, error)
	GetByDate(date string) (*Holiday, error)
	Create(h *Holiday) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List is visible to every role; the calendar carries no per-employee data.
func (s *Service) List() ([]*Holiday, error) {
	return s.repo.GetAll()
}

func (s *Service) Create(actor *employee.Employee, dto CreateHolidayDTO) (*Holiday, error) {
	if !actor.Role.CanManage() {
		return nil, internal.ErrNotPermitted
	}
	date, htype, err := dto.Validate()
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByDate(dto.Date); err == nil && existing != nil {
		return nil, internal.NewConflictError("a holiday already exists on this date", internal.ErrCodeValidationFailed)
	}

	h := &Holiday{
		Date:        date,
		Name:        strings.TrimSpace(dto.Name),
		Type:        htype,
		IsRecurring: dto.IsRecurring,
	}
	if err := s.repo.Create(h); err != nil {
		s.logger.Error("failed to create holiday", "error", err, "date", dto.Date)
		return nil, err
	}

	s.logger.Info("holiday created", "holiday_id", h.ID, "date", dto.Date, "created_by", actor.ID)
	return h, nil
}
