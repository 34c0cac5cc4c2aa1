package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/hrportal/workforce/internal"
	"github.com/hrportal/workforce/internal/overtime"
)

// OvertimeRepository implements the overtime.Repository interface using GORM
type OvertimeRepository struct {
	db *gorm.DB
}

// NewOvertimeRepository creates a new overtime claim repository
func NewOvertimeRepository(db *gorm.DB) overtime.Repository {
	return &OvertimeRepository{db: db}
}

// Create saves a new overtime claim to the database
func (r *OvertimeRepository) Create(claim *overtime.OvertimeClaim) error {
	return r.db.Create(claim).Error
}

// GetByID retrieves an overtime claim by its ID
func (r *OvertimeRepository) GetByID(id int64) (*overtime.OvertimeClaim, error) {
	var claim overtime.OvertimeClaim
	err := r.db.Where("id = ?", id).First(&claim).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrOvertimeNotFound
		}
		return nil, err
	}
	return &claim, nil
}

// GetByUserID retrieves overtime claims owned by a user, newest first
func (r *OvertimeRepository) GetByUserID(userID int64, status overtime.Status, limit, offset int) ([]*overtime.OvertimeClaim, error) {
	q := r.db.Where("user_id = ?", userID)
	q = filterStatus(q, status)

	var claims []*overtime.OvertimeClaim
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&claims).Error
	return claims, err
}

// GetByManagerID retrieves overtime claims owned by a manager's direct
// reports, newest first. The manager's own claims are excluded.
func (r *OvertimeRepository) GetByManagerID(managerID int64, status overtime.Status, limit, offset int) ([]*overtime.OvertimeClaim, error) {
	q := r.db.
		Joins("JOIN users ON users.id = overtime_claims.user_id").
		Where("users.manager_id = ? AND overtime_claims.user_id <> ?", managerID, managerID)
	q = filterStatus(q, status)

	var claims []*overtime.OvertimeClaim
	err := q.Order("overtime_claims.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&claims).Error
	return claims, err
}

// GetAll retrieves overtime claims across all employees, newest first
func (r *OvertimeRepository) GetAll(status overtime.Status, limit, offset int) ([]*overtime.OvertimeClaim, error) {
	q := filterStatus(r.db, status)

	var claims []*overtime.OvertimeClaim
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&claims).Error
	return claims, err
}

// GetPendingForAdmin retrieves every undecided overtime claim, oldest first
func (r *OvertimeRepository) GetPendingForAdmin(limit, offset int) ([]*overtime.OvertimeClaim, error) {
	var claims []*overtime.OvertimeClaim
	err := r.db.Where("status = ?", string(overtime.StatusPending)).
		Order("created_at ASC"). // FIFO for approvals
		Limit(limit).
		Offset(offset).
		Find(&claims).Error
	return claims, err
}

// GetPendingForManager retrieves undecided overtime claims from a manager's
// direct reports, oldest first
func (r *OvertimeRepository) GetPendingForManager(managerID int64, limit, offset int) ([]*overtime.OvertimeClaim, error) {
	var claims []*overtime.OvertimeClaim
	err := r.db.
		Joins("JOIN users ON users.id = overtime_claims.user_id").
		Where("users.manager_id = ? AND overtime_claims.user_id <> ?", managerID, managerID).
		Where("overtime_claims.status = ?", string(overtime.StatusPending)).
		Order("overtime_claims.created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&claims).Error
	return claims, err
}

// DecideIfPending records a decision only when the claim is still PENDING.
// The status predicate makes the transition atomic: a concurrent decision
// leaves zero rows affected.
func (r *OvertimeRepository) DecideIfPending(id int64, status overtime.Status, comment *string, approverID int64, decidedAt time.Time) (bool, error) {
	updates := map[string]interface{}{
		"status":      string(status),
		"approver_id": approverID,
		"decided_at":  decidedAt,
		"updated_at":  time.Now(),
	}
	if comment != nil {
		updates["manager_comment"] = *comment
	}

	res := r.db.Model(&overtime.OvertimeClaim{}).
		Where("id = ? AND status = ?", id, string(overtime.StatusPending)).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func filterStatus(q *gorm.DB, status overtime.Status) *gorm.DB {
	if status == "" {
		return q
	}
	return q.Where("status = ?", string(status))
}
