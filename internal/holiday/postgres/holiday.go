package postgres

import (
	"gorm.io/gorm"

	"github.com/hrportal/workforce/internal"
	"github.com/hrportal/workforce/internal/holiday"
)

// HolidayRepository implements the holiday.Repository interface using GORM
type HolidayRepository struct {
	db *gorm.DB
}

func NewHolidayRepository(db *gorm.DB) holiday.Repository {
	return &HolidayRepository{db: db}
}

// GetAll retrieves the calendar in date order
func (r *HolidayRepository) GetAll() ([]*holiday.Holiday, error) {
	var holidays []*holiday.Holiday
	err := r.db.Order("date ASC").Find(&holidays).Error
	return holidays, err
}

func (r *HolidayRepository) GetByDate(date string) (*holiday.Holiday, error) {
	var h holiday.Holiday
	err := r.db.Where("date = ?", date).First(&h).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrHolidayNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *HolidayRepository) Create(h *holiday.Holiday) error {
	return r.db.Create(h).Error
}
