package dashboard_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hrportal/workforce/internal"
	"github.com/hrportal/workforce/internal/dashboard"
	"github.com/hrportal/workforce/internal/employee"
)

func TestDashboardService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dashboard Service Suite")
}

// Mock repository for testing
type mockDashboardRepository struct {
	global     dashboard.Stats
	teams      map[int64]dashboard.Stats
	onLeaveDay time.Time
}

func newMockDashboardRepository() *mockDashboardRepository {
	return &mockDashboardRepository{teams: make(map[int64]dashboard.Stats)}
}

func (m *mockDashboardRepository) CountActiveEmployees() (int64, error) {
	return m.global.TotalEmployees, nil
}

func (m *mockDashboardRepository) CountActiveEmployeesByManager(managerID int64) (int64, error) {
	return m.teams[managerID].TotalEmployees, nil
}

func (m *mockDashboardRepository) CountPendingLeaves() (int64, error) {
	return m.global.PendingLeaves, nil
}

func (m *mockDashboardRepository) CountPendingLeavesByManager(managerID int64) (int64, error) {
	return m.teams[managerID].PendingLeaves, nil
}

func (m *mockDashboardRepository) CountPendingOvertime() (int64, error) {
	return m.global.PendingOvertime, nil
}

func (m *mockDashboardRepository) CountPendingOvertimeByManager(managerID int64) (int64, error) {
	return m.teams[managerID].PendingOvertime, nil
}

func (m *mockDashboardRepository) CountOnLeave(day time.Time) (int64, error) {
	m.onLeaveDay = day
	return m.global.OnLeaveToday, nil
}

func (m *mockDashboardRepository) CountOnLeaveByManager(managerID int64, day time.Time) (int64, error) {
	m.onLeaveDay = day
	return m.teams[managerID].OnLeaveToday, nil
}

var _ = Describe("Dashboard Service", func() {
	var (
		svc      *dashboard.Service
		mockRepo *mockDashboardRepository
		admin    *employee.Employee
		manager  *employee.Employee
		staff    *employee.Employee
	)

	BeforeEach(func() {
		mockRepo = newMockDashboardRepository()
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		svc = dashboard.NewService(mockRepo, logger)

		admin = &employee.Employee{ID: 1, FullName: "ADMIN", Role: employee.RoleAdmin, IsActive: true}
		manager = &employee.Employee{ID: 2, FullName: "MANAGER", Role: employee.RoleManager, IsActive: true}
		staff = &employee.Employee{ID: 3, FullName: "STAFF", Role: employee.RoleEmployee, IsActive: true}

		mockRepo.global = dashboard.Stats{TotalEmployees: 12, PendingLeaves: 4, PendingOvertime: 2, OnLeaveToday: 3}
		mockRepo.teams[manager.ID] = dashboard.Stats{TotalEmployees: 5, PendingLeaves: 1, PendingOvertime: 1, OnLeaveToday: 1}
	})

	It("gives an admin the global snapshot", func() {
		stats, err := svc.Stats(admin)

		Expect(err).NotTo(HaveOccurred())
		Expect(stats.TotalEmployees).To(Equal(int64(12)))
		Expect(stats.PendingLeaves).To(Equal(int64(4)))
		Expect(stats.PendingOvertime).To(Equal(int64(2)))
		Expect(stats.OnLeaveToday).To(Equal(int64(3)))
	})

	It("gives a manager their team snapshot", func() {
		stats, err := svc.Stats(manager)

		Expect(err).NotTo(HaveOccurred())
		Expect(stats.TotalEmployees).To(Equal(int64(5)))
		Expect(stats.PendingLeaves).To(Equal(int64(1)))
	})

	It("uses the current day for the on-leave counter", func() {
		_, err := svc.Stats(admin)

		Expect(err).NotTo(HaveOccurred())
		Expect(mockRepo.onLeaveDay).To(BeTemporally("~", time.Now(), time.Minute))
	})

	It("denies plain employees", func() {
		_, err := svc.Stats(staff)
		Expect(err).To(MatchError(internal.ErrNotPermitted))
	})
})
