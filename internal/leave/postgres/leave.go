package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/hrportal/workforce/internal"
	"github.com/hrportal/workforce/internal/leave"
)

// LeaveRepository implements the leave.Repository interface using GORM
type LeaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository creates a new leave request repository
func NewLeaveRepository(db *gorm.DB) leave.Repository {
	return &LeaveRepository{db: db}
}

// Create saves a new leave request to the database
func (r *LeaveRepository) Create(req *leave.LeaveRequest) error {
	return r.db.Create(req).Error
}

// GetByID retrieves a leave request by its ID
func (r *LeaveRepository) GetByID(id int64) (*leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	err := r.db.Where("id = ?", id).First(&req).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrLeaveNotFound
		}
		return nil, err
	}
	return &req, nil
}

// GetByUserID retrieves leave requests owned by a user, newest first
func (r *LeaveRepository) GetByUserID(userID int64, status leave.Status, limit, offset int) ([]*leave.LeaveRequest, error) {
	q := r.db.Where("user_id = ?", userID)
	q = filterStatus(q, status)

	var reqs []*leave.LeaveRequest
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reqs).Error
	return reqs, err
}

// GetByManagerID retrieves leave requests owned by a manager's direct
// reports, newest first. The manager's own requests are excluded.
func (r *LeaveRepository) GetByManagerID(managerID int64, status leave.Status, limit, offset int) ([]*leave.LeaveRequest, error) {
	q := r.db.
		Joins("JOIN users ON users.id = leave_requests.user_id").
		Where("users.manager_id = ? AND leave_requests.user_id <> ?", managerID, managerID)
	q = filterStatus(q, status)

	var reqs []*leave.LeaveRequest
	err := q.Order("leave_requests.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reqs).Error
	return reqs, err
}

// GetAll retrieves leave requests across all employees, newest first
func (r *LeaveRepository) GetAll(status leave.Status, limit, offset int) ([]*leave.LeaveRequest, error) {
	q := filterStatus(r.db, status)

	var reqs []*leave.LeaveRequest
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reqs).Error
	return reqs, err
}

// GetPendingForAdmin retrieves every undecided leave request, oldest first
func (r *LeaveRepository) GetPendingForAdmin(limit, offset int) ([]*leave.LeaveRequest, error) {
	var reqs []*leave.LeaveRequest
	err := r.db.Where("status IN ?", pendingStatuses()).
		Order("created_at ASC"). // FIFO for approvals
		Limit(limit).
		Offset(offset).
		Find(&reqs).Error
	return reqs, err
}

// GetPendingForManager retrieves undecided leave requests from a manager's
// direct reports, oldest first
func (r *LeaveRepository) GetPendingForManager(managerID int64, limit, offset int) ([]*leave.LeaveRequest, error) {
	var reqs []*leave.LeaveRequest
	err := r.db.
		Joins("JOIN users ON users.id = leave_requests.user_id").
		Where("users.manager_id = ? AND leave_requests.user_id <> ?", managerID, managerID).
		Where("leave_requests.status IN ?", pendingStatuses()).
		Order("leave_requests.created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&reqs).Error
	return reqs, err
}

// DecideIfPending records a decision only when the request is still
// undecided. The status predicate in the WHERE clause makes the transition
// atomic: a concurrent decision or cancellation leaves zero rows affected.
func (r *LeaveRepository) DecideIfPending(id int64, status leave.Status, comment *string, approverID int64, decidedAt time.Time) (bool, error) {
	updates := map[string]interface{}{
		"status":      string(status),
		"approver_id": approverID,
		"decided_at":  decidedAt,
		"updated_at":  time.Now(),
	}
	if comment != nil {
		updates["manager_comment"] = *comment
	}

	res := r.db.Model(&leave.LeaveRequest{}).
		Where("id = ? AND status IN ?", id, pendingStatuses()).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CancelIfPending moves a still-undecided request to CANCELLED, atomically
func (r *LeaveRepository) CancelIfPending(id int64, decidedAt time.Time) (bool, error) {
	res := r.db.Model(&leave.LeaveRequest{}).
		Where("id = ? AND status IN ?", id, pendingStatuses()).
		Updates(map[string]interface{}{
			"status":     string(leave.StatusCancelled),
			"decided_at": decidedAt,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func filterStatus(q *gorm.DB, status leave.Status) *gorm.DB {
	if status == "" {
		return q
	}
	return q.Where("status = ?", string(status))
}

func pendingStatuses() []string {
	return []string{string(leave.StatusPending), string(leave.StatusPendingAdmin)}
}
