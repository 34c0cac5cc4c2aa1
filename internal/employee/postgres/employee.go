package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/hrportal/workforce/internal"
	"github.com/hrportal/workforce/internal/employee"
)

// EmployeeRepository implements the employee.Repository interface using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(emp *employee.Employee) error {
	return r.db.Create(emp).Error
}

func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("id = ?", id).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetByEmail(email string) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("email = ?", email).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetAll(limit, offset int) ([]*employee.Employee, error) {
	var employees []*employee.Employee
	err := r.db.Order("full_name ASC").
		Limit(limit).
		Offset(offset).
		Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetByManagerID(managerID int64, limit, offset int) ([]*employee.Employee, error) {
	var employees []*employee.Employee
	err := r.db.Where("manager_id = ?", managerID).
		Order("full_name ASC").
		Limit(limit).
		Offset(offset).
		Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) Update(emp *employee.Employee) error {
	emp.UpdatedAt = time.Now()
	return r.db.Save(emp).Error
}

func (r *EmployeeRepository) Delete(id int64) error {
	return r.db.Delete(&employee.Employee{}, id).Error
}

// HasRequestHistory reports whether any leave request or overtime claim
// references the user. Such users are deactivated rather than deleted.
func (r *EmployeeRepository) HasRequestHistory(userID int64) (bool, error) {
	var count int64
	err := r.db.Table("leave_requests").Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	err = r.db.Table("overtime_claims").Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
