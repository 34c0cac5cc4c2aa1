package holiday_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hrportal/workforce/internal"
	"github.com/hrportal/workforce/internal/employee"
	"github.com/hrportal/workforce/internal/holiday"
)

func TestHolidayService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Holiday Service Suite")
}

// Mock repository for testing
type mockHolidayRepository struct {
	holidays map[string]*holiday.Holiday
	nextID   int64
}

func newMockHolidayRepository() *mockHolidayRepository {
	return &mockHolidayRepository{holidays: make(map[string]*holiday.Holiday), nextID: 1}
}

func (m *mockHolidayRepository) GetAll() ([]*holiday.Holiday, error) {
	var result []*holiday.Holiday
	for _, h := range m.holidays {
		result = append(result, h)
	}
	return result, nil
}

func (m *mockHolidayRepository) GetByDate(date string) (*holiday.Holiday, error) {
	h, ok := m.holidays[date]
	if !ok {
		return nil, internal.ErrHolidayNotFound
	}
	return h, nil
}

func (m *mockHolidayRepository) Create(h *holiday.Holiday) error {
	h.ID = m.nextID
	m.nextID++
	m.holidays[h.Date.Format("2006-01-02")] = h
	return nil
}

var _ = Describe("Holiday Service", func() {
	var (
		svc      *holiday.Service
		mockRepo *mockHolidayRepository
		admin    *employee.Employee
		manager  *employee.Employee
		staff    *employee.Employee
	)

	BeforeEach(func() {
		mockRepo = newMockHolidayRepository()
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		svc = holiday.NewService(mockRepo, logger)

		admin = &employee.Employee{ID: 1, FullName: "ADMIN", Role: employee.RoleAdmin, IsActive: true}
		manager = &employee.Employee{ID: 2, FullName: "MANAGER", Role: employee.RoleManager, IsActive: true}
		staff = &employee.Employee{ID: 3, FullName: "STAFF", Role: employee.RoleEmployee, IsActive: true}
	})

	Describe("Create", func() {
		var dto holiday.CreateHolidayDTO

		BeforeEach(func() {
			dto = holiday.CreateHolidayDTO{Date: "2026-12-25", Name: "Christmas Day", Type: "PUBLIC", IsRecurring: true}
		})

		It("creates a holiday for an admin", func() {
			h, err := svc.Create(admin, dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(h.Name).To(Equal("Christmas Day"))
			Expect(h.Type).To(Equal(holiday.TypePublic))
			Expect(h.Date).To(Equal(time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)))
			Expect(h.IsRecurring).To(BeTrue())
		})

		It("allows managers as well", func() {
			_, err := svc.Create(manager, dto)
			Expect(err).NotTo(HaveOccurred())
		})

		It("denies regular employees", func() {
			_, err := svc.Create(staff, dto)
			Expect(err).To(MatchError(internal.ErrNotPermitted))
		})

		It("defaults a blank type to PUBLIC", func() {
			dto.Type = ""

			h, err := svc.Create(admin, dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(h.Type).To(Equal(holiday.TypePublic))
		})

		It("rejects a duplicate date with a conflict", func() {
			_, err := svc.Create(admin, dto)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Create(admin, dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
		})

		It("rejects a malformed date", func() {
			dto.Date = "25/12/2026"

			_, err := svc.Create(admin, dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidDate))
		})

		It("rejects an unknown type", func() {
			dto.Type = "BANK"

			_, err := svc.Create(admin, dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("List", func() {
		It("is visible without role checks", func() {
			_, err := svc.Create(admin, holiday.CreateHolidayDTO{Date: "2026-01-01", Name: "New Year's Day"})
			Expect(err).NotTo(HaveOccurred())

			holidays, err := svc.List()

			Expect(err).NotTo(HaveOccurred())
			Expect(holidays).To(HaveLen(1))
		})
	})
})
