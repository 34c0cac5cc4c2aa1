package employee_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/hrportal/workforce/internal"
	"github.com/hrportal/workforce/internal/employee"
)

func TestEmployeeService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Service Suite")
}

// Mock repository for testing
type mockEmployeeRepository struct {
	employees map[int64]*employee.Employee
	history   map[int64]bool
	deleted   []int64
	nextID    int64
}

func newMockEmployeeRepository() *mockEmployeeRepository {
	return &mockEmployeeRepository{
		employees: make(map[int64]*employee.Employee),
		history:   make(map[int64]bool),
		nextID:    100,
	}
}

func (m *mockEmployeeRepository) Create(emp *employee.Employee) error {
	emp.ID = m.nextID
	m.nextID++
	m.employees[emp.ID] = emp
	return nil
}

func (m *mockEmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	emp, ok := m.employees[id]
	if !ok {
		return nil, internal.ErrEmployeeNotFound
	}
	return emp, nil
}

func (m *mockEmployeeRepository) GetByEmail(email string) (*employee.Employee, error) {
	for _, emp := range m.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return nil, internal.ErrEmployeeNotFound
}

func (m *mockEmployeeRepository) GetAll(limit, offset int) ([]*employee.Employee, error) {
	var result []*employee.Employee
	for _, emp := range m.employees {
		result = append(result, emp)
	}
	return result, nil
}

func (m *mockEmployeeRepository) GetByManagerID(managerID int64, limit, offset int) ([]*employee.Employee, error) {
	var result []*employee.Employee
	for _, emp := range m.employees {
		if emp.ManagerID != nil && *emp.ManagerID == managerID {
			result = append(result, emp)
		}
	}
	return result, nil
}

func (m *mockEmployeeRepository) Update(emp *employee.Employee) error {
	m.employees[emp.ID] = emp
	return nil
}

func (m *mockEmployeeRepository) Delete(id int64) error {
	delete(m.employees, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockEmployeeRepository) HasRequestHistory(userID int64) (bool, error) {
	return m.history[userID], nil
}

var _ = Describe("Employee Service", func() {
	var (
		svc      *employee.Service
		mockRepo *mockEmployeeRepository
		admin    *employee.Employee
		manager  *employee.Employee
		staff    *employee.Employee
	)

	BeforeEach(func() {
		mockRepo = newMockEmployeeRepository()
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		svc = employee.NewService(mockRepo, bcrypt.MinCost, logger)

		managerID := int64(2)
		admin = &employee.Employee{ID: 1, Email: "admin@corp.test", FullName: "ADMIN", Role: employee.RoleAdmin, IsActive: true}
		manager = &employee.Employee{ID: 2, Email: "manager@corp.test", FullName: "MANAGER", Role: employee.RoleManager, IsActive: true}
		staff = &employee.Employee{ID: 3, Email: "staff@corp.test", FullName: "STAFF", Role: employee.RoleEmployee, ManagerID: &managerID, IsActive: true}
		mockRepo.employees[1] = admin
		mockRepo.employees[2] = manager
		mockRepo.employees[3] = staff
	})

	Describe("Create", func() {
		var dto employee.CreateEmployeeDTO

		BeforeEach(func() {
			dto = employee.CreateEmployeeDTO{
				Email:    "new@corp.test",
				Password: "secret-pass",
				FullName: "new hire",
				Role:     "EMPLOYEE",
			}
		})

		It("creates an employee with a hashed password and normalized name", func() {
			emp, err := svc.Create(admin, dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(emp.FullName).To(Equal("NEW HIRE"))
			Expect(emp.PasswordHash).NotTo(Equal("secret-pass"))
			Expect(bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte("secret-pass"))).To(Succeed())
			Expect(emp.IsActive).To(BeTrue())
		})

		It("lets managers create regular employees", func() {
			_, err := svc.Create(manager, dto)
			Expect(err).NotTo(HaveOccurred())
		})

		It("refuses a manager minting an admin", func() {
			dto.Role = "ADMIN"

			_, err := svc.Create(manager, dto)

			Expect(err).To(MatchError(internal.ErrNotPermitted))
		})

		It("lets an admin mint another admin", func() {
			dto.Role = "ADMIN"

			_, err := svc.Create(admin, dto)

			Expect(err).NotTo(HaveOccurred())
		})

		It("denies regular employees entirely", func() {
			_, err := svc.Create(staff, dto)
			Expect(err).To(MatchError(internal.ErrNotPermitted))
		})

		It("rejects a duplicate email", func() {
			dto.Email = "staff@corp.test"

			_, err := svc.Create(admin, dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateEmail))
		})

		It("rejects an unknown role", func() {
			dto.Role = "SUPERVISOR"

			_, err := svc.Create(admin, dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidRole))
		})

		It("rejects a manager reference that does not exist", func() {
			ghost := int64(999)
			dto.ManagerID = &ghost

			_, err := svc.Create(admin, dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidManager))
		})

		It("rejects a manager reference pointing at a regular employee", func() {
			staffID := staff.ID
			dto.ManagerID = &staffID

			_, err := svc.Create(admin, dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidManager))
		})
	})

	Describe("Update", func() {
		It("reassigns the reporting line to a valid manager", func() {
			adminID := admin.ID
			dto := employee.UpdateEmployeeDTO{ManagerID: &adminID}

			emp, err := svc.Update(admin, staff.ID, dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(*emp.ManagerID).To(Equal(adminID))
		})

		It("refuses a manager promoting someone to admin", func() {
			role := "ADMIN"
			dto := employee.UpdateEmployeeDTO{Role: &role}

			_, err := svc.Update(manager, staff.ID, dto)

			Expect(err).To(MatchError(internal.ErrNotPermitted))
		})

		It("deactivates via is_active", func() {
			inactive := false
			dto := employee.UpdateEmployeeDTO{IsActive: &inactive}

			emp, err := svc.Update(admin, staff.ID, dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(emp.IsActive).To(BeFalse())
		})

		It("returns not found for an unknown employee", func() {
			name := "GHOST"
			_, err := svc.Update(admin, 999, employee.UpdateEmployeeDTO{FullName: &name})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))
		})
	})

	Describe("Delete", func() {
		It("deletes an employee with no request history", func() {
			_, err := svc.Delete(admin, staff.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.deleted).To(ContainElement(staff.ID))
		})

		It("blocks deletion when leave or overtime rows reference the user", func() {
			mockRepo.history[staff.ID] = true

			_, err := svc.Delete(admin, staff.ID)

			Expect(err).To(MatchError(internal.ErrEmployeeReferenced))
			Expect(mockRepo.deleted).To(BeEmpty())
		})

		It("refuses self-deletion", func() {
			_, err := svc.Delete(admin, admin.ID)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("denies managers", func() {
			_, err := svc.Delete(manager, staff.ID)
			Expect(err).To(MatchError(internal.ErrNotPermitted))
		})
	})

	Describe("ActiveManagerOf", func() {
		It("resolves an assigned active manager", func() {
			mgr, err := svc.ActiveManagerOf(staff.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(mgr.ID).To(Equal(manager.ID))
		})

		It("returns nil when no manager is assigned", func() {
			mgr, err := svc.ActiveManagerOf(admin.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(mgr).To(BeNil())
		})

		It("returns nil when the assigned manager is deactivated", func() {
			manager.IsActive = false

			mgr, err := svc.ActiveManagerOf(staff.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(mgr).To(BeNil())
		})

		It("returns nil when the assigned manager row is gone", func() {
			ghost := int64(999)
			staff.ManagerID = &ghost

			mgr, err := svc.ActiveManagerOf(staff.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(mgr).To(BeNil())
		})
	})

	Describe("List and Team", func() {
		It("denies employees the full roster", func() {
			_, err := svc.List(staff, 20, 0)
			Expect(err).To(MatchError(internal.ErrNotPermitted))
		})

		It("returns a manager's direct reports", func() {
			team, err := svc.Team(manager, 20, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(team).To(HaveLen(1))
			Expect(team[0].ID).To(Equal(staff.ID))
		})
	})
})
