package leave

import (
	"context"
	"log/slog"
	"time"

	"github.com/hrportal/workforce/internal"
	"github.com/hrportal/workforce/internal/approval"
	"github.com/hrportal/workforce/internal/core/events"
	"github.com/hrportal/workforce/internal/employee"
	"github.com/hrportal/workforce/internal/leavetype"
)

// Repository defines the data access methods for leave requests. The two
// conditional transitions (DecideIfPending, CancelIfPending) must be atomic
// read-modify-writes: they report false when the row was no longer in a
// pending state, without touching it.
type Repository interface {
	Create(req *LeaveRequest) error
	GetByID(id int64) (*LeaveRequest, error)
	GetByUserID(userID int64, status Status, limit, offset int) ([]*LeaveRequest, error)
	GetByManagerID(managerID int64, status Status, limit, offset int) ([]*LeaveRequest, error)
	GetAll(status Status, limit, offset int) ([]*LeaveRequest, error)
	GetPendingForAdmin(limit, offset int) ([]*LeaveRequest, error)
	GetPendingForManager(managerID int64, limit, offset int) ([]*LeaveRequest, error)
	DecideIfPending(id int64, status Status, comment *string, approverID int64, decidedAt time.Time) (bool, error)
	CancelIfPending(id int64, decidedAt time.Time) (bool, error)
}

// Directory is the slice of the employee roster the lifecycle needs.
type Directory interface {
	ResolveUser(id int64) (*employee.Employee, error)
	ActiveManagerOf(userID int64) (*employee.Employee, error)
}

// TypeRegistry resolves leave type references. Unknown ids propagate as
// errors; the lifecycle never substitutes default reference data.
type TypeRegistry interface {
	Resolve(id int64) (*leavetype.LeaveType, error)
}

type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo      Repository
	directory Directory
	types     TypeRegistry
	publisher Publisher
	logger    *slog.Logger
}

func NewService(repo Repository, directory Directory, types TypeRegistry, publisher Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		types:     types,
		publisher: publisher,
		logger:    logger,
	}
}

// Create validates and files a leave request. Entry status is chosen here,
// once, by the escalation rule: PENDING_ADMIN when the owner has no active
// manager, PENDING otherwise. It is never changed afterwards except by the
// terminal transition.
func (s *Service) Create(actor *employee.Employee, dto CreateLeaveDTO) (*LeaveRequest, error) {
	start, end, err := dto.Validate()
	if err != nil {
		s.logger.Warn("leave validation failed", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	owner := actor
	if dto.UserID != nil && *dto.UserID != actor.ID {
		owner, err = s.directory.ResolveUser(*dto.UserID)
		if err != nil {
			return nil, err
		}
		if err := approval.CanCreateFor(actor, owner); err != nil {
			return nil, err
		}
	}

	if _, err := s.types.Resolve(dto.LeaveTypeID); err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
			return nil, internal.NewValidationFieldError("leave_type_id", "unknown leave type", internal.ErrCodeLeaveTypeNotFound)
		}
		return nil, err
	}

	manager, err := s.directory.ActiveManagerOf(owner.ID)
	if err != nil {
		return nil, err
	}

	status := StatusPending
	if approval.RequiresAdminEscalation(manager) {
		status = StatusPendingAdmin
	}

	req := &LeaveRequest{
		UserID:      owner.ID,
		LeaveTypeID: dto.LeaveTypeID,
		StartDate:   start,
		EndDate:     end,
		TotalDays:   TotalDaysBetween(start, end),
		Status:      status,
		Reason:      dto.Reason,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.Create(req); err != nil {
		s.logger.Error("failed to create leave request", "error", err, "user_id", owner.ID)
		return nil, err
	}

	s.publisher.Publish(context.Background(), events.NewLeaveRequestedEvent(req.ID, req.UserID, string(req.Status), req.TotalDays))

	s.logger.Info("leave request created",
		"leave_id", req.ID,
		"user_id", owner.ID,
		"total_days", req.TotalDays,
		"status", req.Status)

	return req, nil
}

// Decide transitions a pending request to APPROVED or REJECTED. The status
// check and write are a single conditional update so that two racing
// approvers cannot both commit: the loser observes the terminal state and
// gets a state error, never a silent overwrite.
func (s *Service) Decide(actor *employee.Employee, leaveID int64, dto DecideLeaveDTO) (*LeaveRequest, error) {
	newStatus, err := dto.Validate()
	if err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(leaveID)
	if err != nil {
		return nil, err
	}

	owner, err := s.directory.ResolveUser(req.UserID)
	if err != nil {
		return nil, err
	}

	if err := approval.CanDecide(actor, owner); err != nil {
		s.logger.Warn("leave decision denied",
			"leave_id", leaveID,
			"actor_id", actor.ID,
			"owner_id", owner.ID)
		return nil, err
	}

	if !req.CanBeDecided() {
		return nil, internal.ErrAlreadyDecided
	}

	decidedAt := time.Now()
	applied, err := s.repo.DecideIfPending(leaveID, newStatus, dto.Comment, actor.ID, decidedAt)
	if err != nil {
		s.logger.Error("failed to update leave status", "error", err, "leave_id", leaveID)
		return nil, err
	}
	if !applied {
		// Lost the race: someone else moved it to a terminal state first.
		return nil, internal.ErrAlreadyDecided
	}

	updated, err := s.repo.GetByID(leaveID)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(context.Background(), events.NewLeaveDecidedEvent(updated.ID, updated.UserID, actor.ID, string(updated.Status)))

	s.logger.Info("leave request decided",
		"leave_id", leaveID,
		"status", updated.Status,
		"approver_id", actor.ID)

	return updated, nil
}

// Cancel lets the owner withdraw a request that has not been decided yet.
func (s *Service) Cancel(actor *employee.Employee, leaveID int64) (*LeaveRequest, error) {
	req, err := s.repo.GetByID(leaveID)
	if err != nil {
		return nil, err
	}

	if req.UserID != actor.ID {
		return nil, internal.ErrNotPermitted
	}
	if !req.CanBeCancelled() {
		return nil, internal.ErrNotCancellable
	}

	applied, err := s.repo.CancelIfPending(leaveID, time.Now())
	if err != nil {
		s.logger.Error("failed to cancel leave request", "error", err, "leave_id", leaveID)
		return nil, err
	}
	if !applied {
		return nil, internal.ErrNotCancellable
	}

	updated, err := s.repo.GetByID(leaveID)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(context.Background(), events.NewLeaveCancelledEvent(updated.ID, updated.UserID))

	s.logger.Info("leave request cancelled", "leave_id", leaveID, "user_id", actor.ID)
	return updated, nil
}

// List returns the requests visible to the actor: employees see their own,
// managers see their direct reports', admins see everything. Newest first.
func (s *Service) List(actor *employee.Employee, statusFilter string, limit, offset int) ([]*LeaveRequest, error) {
	var status Status
	if statusFilter != "" {
		parsed, ok := ParseStatus(statusFilter)
		if !ok {
			return nil, internal.NewValidationFieldError("status", "unknown status filter", internal.ErrCodeInvalidStatus)
		}
		status = parsed
	}

	switch approval.ListScope(actor.Role) {
	case approval.ScopeAll:
		return s.repo.GetAll(status, limit, offset)
	case approval.ScopeTeam:
		return s.repo.GetByManagerID(actor.ID, status, limit, offset)
	default:
		return s.repo.GetByUserID(actor.ID, status, limit, offset)
	}
}

// PendingApprovals returns the actor's approval queue, oldest first. Admins
// see every pending request including escalated ones; managers see only
// their direct reports' PENDING requests.
func (s *Service) PendingApprovals(actor *employee.Employee, limit, offset int) ([]*LeaveRequest, error) {
	if err := approval.CanViewQueue(actor); err != nil {
		return nil, err
	}

	if actor.Role == employee.RoleAdmin {
		return s.repo.GetPendingForAdmin(limit, offset)
	}
	return s.repo.GetPendingForManager(actor.ID, limit, offset)
}
