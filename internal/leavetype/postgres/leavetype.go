package postgres

import (
	"gorm.io/gorm"

	"github.com/hrportal/workforce/internal"
	"github.com/hrportal/workforce/internal/leavetype"
)

// LeaveTypeRepository implements the leavetype.Repository interface using GORM
type LeaveTypeRepository struct {
	db *gorm.DB
}

func NewLeaveTypeRepository(db *gorm.DB) leavetype.Repository {
	return &LeaveTypeRepository{db: db}
}

func (r *LeaveTypeRepository) GetAll() ([]*leavetype.LeaveType, error) {
	var types []*leavetype.LeaveType
	err := r.db.Order("name ASC").Find(&types).Error
	return types, err
}

func (r *LeaveTypeRepository) GetByID(id int64) (*leavetype.LeaveType, error) {
	var lt leavetype.LeaveType
	err := r.db.Where("id = ?", id).First(&lt).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrLeaveTypeNotFound
		}
		return nil, err
	}
	return &lt, nil
}

func (r *LeaveTypeRepository) GetByName(name string) (*leavetype.LeaveType, error) {
	var lt leavetype.LeaveType
	err := r.db.Where("name = ?", name).First(&lt).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrLeaveTypeNotFound
		}
		return nil, err
	}
	return &lt, nil
}

func (r *LeaveTypeRepository) Create(lt *leavetype.LeaveType) error {
	return r.db.Create(lt).Error
}

func (r *LeaveTypeRepository) Update(lt *leavetype.LeaveType) error {
	return r.db.Save(lt).Error
}
