package overtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/hrportal/workforce/internal"
	"github.com/hrportal/workforce/internal/approval"
	"github.com/hrportal/workforce/internal/core/events"
	"github.com/hrportal/workforce/internal/employee"
)

const clockFormat = "15:04:05"

// Repository defines the data access methods for overtime claims.
// DecideIfPending must be an atomic read-modify-write: it reports false when
// the claim was no longer PENDING, without touching it.
type Repository interface {
	Create(claim *OvertimeClaim) error
	GetByID(id int64) (*OvertimeClaim, error)
	GetByUserID(userID int64, status Status, limit, offset int) ([]*OvertimeClaim, error)
	GetByManagerID(managerID int64, status Status, limit, offset int) ([]*OvertimeClaim, error)
	GetAll(status Status, limit, offset int) ([]*OvertimeClaim, error)
	GetPendingForAdmin(limit, offset int) ([]*OvertimeClaim, error)
	GetPendingForManager(managerID int64, limit, offset int) ([]*OvertimeClaim, error)
	DecideIfPending(id int64, status Status, comment *string, approverID int64, decidedAt time.Time) (bool, error)
}

type Directory interface {
	ResolveUser(id int64) (*employee.Employee, error)
}

type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo      Repository
	directory Directory
	publisher Publisher
	logger    *slog.Logger
}

func NewService(repo Repository, directory Directory, publisher Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		publisher: publisher,
		logger:    logger,
	}
}

// Create validates and files an overtime claim. Claims always enter PENDING:
// a managerless owner is covered by admin queue visibility, not by a
// separate escalated state.
func (s *Service) Create(actor *employee.Employee, dto CreateOvertimeDTO) (*OvertimeClaim, error) {
	otDate, start, end, err := dto.Validate()
	if err != nil {
		s.logger.Warn("overtime validation failed", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	claim := &OvertimeClaim{
		UserID:     actor.ID,
		OTDate:     otDate,
		StartTime:  start.Format(clockFormat),
		EndTime:    end.Format(clockFormat),
		TotalHours: TotalHoursBetween(start, end),
		Status:     StatusPending,
		Reason:     dto.Reason,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.repo.Create(claim); err != nil {
		s.logger.Error("failed to create overtime claim", "error", err, "user_id", actor.ID)
		return nil, err
	}

	hours, _ := claim.TotalHours.Float64()
	s.publisher.Publish(context.Background(), events.NewOvertimeClaimedEvent(claim.ID, claim.UserID, hours))

	s.logger.Info("overtime claim created",
		"claim_id", claim.ID,
		"user_id", actor.ID,
		"total_hours", claim.TotalHours)

	return claim, nil
}

// Decide transitions a PENDING claim to APPROVED or REJECTED via a
// conditional update, so racing approvers cannot both commit.
func (s *Service) Decide(actor *employee.Employee, claimID int64, dto DecideOvertimeDTO) (*OvertimeClaim, error) {
	newStatus, err := dto.Validate()
	if err != nil {
		return nil, err
	}

	claim, err := s.repo.GetByID(claimID)
	if err != nil {
		return nil, err
	}

	owner, err := s.directory.ResolveUser(claim.UserID)
	if err != nil {
		return nil, err
	}

	if err := approval.CanDecide(actor, owner); err != nil {
		s.logger.Warn("overtime decision denied",
			"claim_id", claimID,
			"actor_id", actor.ID,
			"owner_id", owner.ID)
		return nil, err
	}

	if !claim.CanBeDecided() {
		return nil, internal.ErrAlreadyDecided
	}

	applied, err := s.repo.DecideIfPending(claimID, newStatus, dto.Comment, actor.ID, time.Now())
	if err != nil {
		s.logger.Error("failed to update overtime status", "error", err, "claim_id", claimID)
		return nil, err
	}
	if !applied {
		return nil, internal.ErrAlreadyDecided
	}

	updated, err := s.repo.GetByID(claimID)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(context.Background(), events.NewOvertimeDecidedEvent(updated.ID, updated.UserID, actor.ID, string(updated.Status)))

	s.logger.Info("overtime claim decided",
		"claim_id", claimID,
		"status", updated.Status,
		"approver_id", actor.ID)

	return updated, nil
}

// List returns the claims visible to the actor, newest first.
func (s *Service) List(actor *employee.Employee, statusFilter string, limit, offset int) ([]*OvertimeClaim, error) {
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

// PendingApprovals returns the actor's overtime approval queue, oldest
// first. The admin queue covers every PENDING claim, including those whose
// owner has no manager.
func (s *Service) PendingApprovals(actor *employee.Employee, limit, offset int) ([]*OvertimeClaim, error) {
	if err := approval.CanViewQueue(actor); err != nil {
		return nil, err
	}

	if actor.Role == employee.RoleAdmin {
		return s.repo.GetPendingForAdmin(limit, offset)
	}
	return s.repo.GetPendingForManager(actor.ID, limit, offset)
}
