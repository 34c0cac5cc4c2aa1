package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/hrportal/workforce/internal/dashboard"
	"github.com/hrportal/workforce/internal/employee"
	"github.com/hrportal/workforce/internal/leave"
	"github.com/hrportal/workforce/internal/overtime"
)

// DashboardRepository answers the snapshot count queries using GORM
type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) dashboard.Repository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) CountActiveEmployees() (int64, error) {
	var count int64
	err := r.db.Model(&employee.Employee{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountActiveEmployeesByManager(managerID int64) (int64, error) {
	var count int64
	err := r.db.Model(&employee.Employee{}).
		Where("manager_id = ? AND is_active = ?", managerID, true).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountPendingLeaves() (int64, error) {
	var count int64
	err := r.db.Model(&leave.LeaveRequest{}).
		Where("status IN ?", pendingLeaveStatuses()).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountPendingLeavesByManager(managerID int64) (int64, error) {
	var count int64
	err := r.db.Model(&leave.LeaveRequest{}).
		Joins("JOIN users ON users.id = leave_requests.user_id").
		Where("users.manager_id = ? AND leave_requests.user_id <> ?", managerID, managerID).
		Where("leave_requests.status IN ?", pendingLeaveStatuses()).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountPendingOvertime() (int64, error) {
	var count int64
	err := r.db.Model(&overtime.OvertimeClaim{}).
		Where("status = ?", string(overtime.StatusPending)).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountPendingOvertimeByManager(managerID int64) (int64, error) {
	var count int64
	err := r.db.Model(&overtime.OvertimeClaim{}).
		Joins("JOIN users ON users.id = overtime_claims.user_id").
		Where("users.manager_id = ? AND overtime_claims.user_id <> ?", managerID, managerID).
		Where("overtime_claims.status = ?", string(overtime.StatusPending)).
		Count(&count).Error
	return count, err
}

// CountOnLeave counts employees with an approved leave covering the given day
func (r *DashboardRepository) CountOnLeave(day time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&leave.LeaveRequest{}).
		Where("status = ? AND start_date <= ? AND end_date >= ?",
			string(leave.StatusApproved), day, day).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountOnLeaveByManager(managerID int64, day time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&leave.LeaveRequest{}).
		Joins("JOIN users ON users.id = leave_requests.user_id").
		Where("users.manager_id = ? AND leave_requests.user_id <> ?", managerID, managerID).
		Where("leave_requests.status = ? AND leave_requests.start_date <= ? AND leave_requests.end_date >= ?",
			string(leave.StatusApproved), day, day).
		Count(&count).Error
	return count, err
}

func pendingLeaveStatuses() []string {
	return []string{string(leave.StatusPending), string(leave.StatusPendingAdmin)}
}
