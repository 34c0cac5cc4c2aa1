package dashboard

import (
	"log/slog"
	"time"

	"github.com/hrportal/workforce/internal"
	"github.com/hrportal/workforce/internal/employee"
)

// Repository exposes the count queries behind the snapshot. The manager
// variants are scoped to the manager's direct reports.
type Repository interface {
	CountActiveEmployees() (int64, error)
	CountActiveEmployeesByManager(managerID int64) (int64, error)
	CountPendingLeaves() (int64, error)
	CountPendingLeavesByManager(managerID int64) (int64, error)
	CountPendingOvertime() (int64, error)
	CountPendingOvertimeByManager(managerID int64) (int64, error)
	CountOnLeave(day time.Time) (int64, error)
	CountOnLeaveByManager(managerID int64, day time.Time) (int64, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Stats returns the admin's global snapshot or a manager's team snapshot.
// Plain employees have no dashboard.
func (s *Service) Stats(actor *employee.Employee) (*Stats, error) {
	switch actor.Role {
	case employee.RoleAdmin:
		return s.globalStats()
	case employee.RoleManager:
		return s.teamStats(actor.ID)
	case employee.RoleEmployee:
		return nil, internal.ErrNotPermitted
	}
	return nil, internal.ErrNotPermitted
}

func (s *Service) globalStats() (*Stats, error) {
	stats := &Stats{}
	var err error

	if stats.TotalEmployees, err = s.repo.CountActiveEmployees(); err != nil {
		return nil, err
	}
	if stats.PendingLeaves, err = s.repo.CountPendingLeaves(); err != nil {
		return nil, err
	}
	if stats.PendingOvertime, err = s.repo.CountPendingOvertime(); err != nil {
		return nil, err
	}
	if stats.OnLeaveToday, err = s.repo.CountOnLeave(s.now()); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Service) teamStats(managerID int64) (*Stats, error) {
	stats := &Stats{}
	var err error

	if stats.TotalEmployees, err = s.repo.CountActiveEmployeesByManager(managerID); err != nil {
		return nil, err
	}
	if stats.PendingLeaves, err = s.repo.CountPendingLeavesByManager(managerID); err != nil {
		return nil, err
	}
	if stats.PendingOvertime, err = s.repo.CountPendingOvertimeByManager(managerID); err != nil {
		return nil, err
	}
	if stats.OnLeaveToday, err = s.repo.CountOnLeaveByManager(managerID, s.now()); err != nil {
		return nil, err
	}
	return stats, nil
}
