package leave_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hrportal/workforce/internal"
	"github.com/hrportal/workforce/internal/core/events"
	"github.com/hrportal/workforce/internal/employee"
	"github.com/hrportal/workforce/internal/leave"
	"github.com/hrportal/workforce/internal/leavetype"
)

func TestLeaveService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Leave Service Suite")
}

// Mock repository for testing
type mockLeaveRepository struct {
	requests    map[int64]*leave.LeaveRequest
	createError error
	getError    error
	nextID      int64
}

func newMockLeaveRepository() *mockLeaveRepository {
	return &mockLeaveRepository{
		requests: make(map[int64]*leave.LeaveRequest),
		nextID:   1,
	}
}

func (m *mockLeaveRepository) Create(req *leave.LeaveRequest) error {
	if m.createError != nil {
		return m.createError
	}
	req.ID = m.nextID
	m.nextID++
	m.requests[req.ID] = req
	return nil
}

func (m *mockLeaveRepository) GetByID(id int64) (*leave.LeaveRequest, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	req, exists := m.requests[id]
	if !exists {
		return nil, internal.ErrLeaveNotFound
	}
	return req, nil
}

func (m *mockLeaveRepository) GetByUserID(userID int64, status leave.Status, limit, offset int) ([]*leave.LeaveRequest, error) {
	var out []*leave.LeaveRequest
	for _, req := range m.requests {
		if req.UserID == userID && (status == "" || req.Status == status) {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *mockLeaveRepository) GetByManagerID(managerID int64, status leave.Status, limit, offset int) ([]*leave.LeaveRequest, error) {
	var out []*leave.LeaveRequest
	for _, req := range m.requests {
		if req.UserID != managerID && (status == "" || req.Status == status) {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *mockLeaveRepository) GetAll(status leave.Status, limit, offset int) ([]*leave.LeaveRequest, error) {
	var out []*leave.LeaveRequest
	for _, req := range m.requests {
		if status == "" || req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *mockLeaveRepository) GetPendingForAdmin(limit, offset int) ([]*leave.LeaveRequest, error) {
	var out []*leave.LeaveRequest
	for _, req := range m.requests {
		if req.CanBeDecided() {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *mockLeaveRepository) GetPendingForManager(managerID int64, limit, offset int) ([]*leave.LeaveRequest, error) {
	var out []*leave.LeaveRequest
	for _, req := range m.requests {
		if req.Status == leave.StatusPending && req.UserID != managerID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *mockLeaveRepository) DecideIfPending(id int64, status leave.Status, comment *string, approverID int64, decidedAt time.Time) (bool, error) {
	req, exists := m.requests[id]
	if !exists || !req.CanBeDecided() {
		return false, nil
	}
	req.Status = status
	req.ApproverID = &approverID
	req.ManagerComment = comment
	req.DecidedAt = &decidedAt
	return true, nil
}

func (m *mockLeaveRepository) CancelIfPending(id int64, decidedAt time.Time) (bool, error) {
	req, exists := m.requests[id]
	if !exists || !req.CanBeCancelled() {
		return false, nil
	}
	req.Status = leave.StatusCancelled
	req.DecidedAt = &decidedAt
	return true, nil
}

// Mock employee directory for testing
type mockDirectory struct {
	users    map[int64]*employee.Employee
	managers map[int64]*employee.Employee
}

func newMockDirectory() *mockDirectory {
	return &mockDirectory{
		users:    make(map[int64]*employee.Employee),
		managers: make(map[int64]*employee.Employee),
	}
}

func (m *mockDirectory) ResolveUser(id int64) (*employee.Employee, error) {
	user, exists := m.users[id]
	if !exists {
		return nil, internal.ErrEmployeeNotFound
	}
	return user, nil
}

func (m *mockDirectory) ActiveManagerOf(userID int64) (*employee.Employee, error) {
	return m.managers[userID], nil
}

// Mock leave type registry for testing
type mockTypeRegistry struct {
	types map[int64]*leavetype.LeaveType
}

func newMockTypeRegistry() *mockTypeRegistry {
	return &mockTypeRegistry{types: make(map[int64]*leavetype.LeaveType)}
}

func (m *mockTypeRegistry) Resolve(id int64) (*leavetype.LeaveType, error) {
	lt, exists := m.types[id]
	if !exists {
		return nil, internal.ErrLeaveTypeNotFound
	}
	return lt, nil
}

// Mock event publisher that records published events
type mockPublisher struct {
	published []events.Event
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

var _ = Describe("LeaveService", func() {
	var (
		leaveService *leave.Service
		mockRepo     *mockLeaveRepository
		directory    *mockDirectory
		registry     *mockTypeRegistry
		publisher    *mockPublisher
		logger       *slog.Logger

		admin      *employee.Employee
		manager    *employee.Employee
		staff      *employee.Employee
		otherStaff *employee.Employee
	)

	BeforeEach(func() {
		mockRepo = newMockLeaveRepository()
		directory = newMockDirectory()
		registry = newMockTypeRegistry()
		publisher = &mockPublisher{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		leaveService = leave.NewService(mockRepo, directory, registry, publisher, logger)

		admin = &employee.Employee{ID: 1, FullName: "ADMIN", Role: employee.RoleAdmin, IsActive: true}
		manager = &employee.Employee{ID: 2, FullName: "MANAGER", Role: employee.RoleManager, IsActive: true}
		managerID := manager.ID
		staff = &employee.Employee{ID: 3, FullName: "STAFF", Role: employee.RoleEmployee, ManagerID: &managerID, IsActive: true}
		otherStaff = &employee.Employee{ID: 4, FullName: "OTHER", Role: employee.RoleEmployee, IsActive: true}

		for _, u := range []*employee.Employee{admin, manager, staff, otherStaff} {
			directory.users[u.ID] = u
		}
		directory.managers[staff.ID] = manager

		registry.types[10] = &leavetype.LeaveType{ID: 10, Name: "ANNUAL LEAVE", DefaultDaysPerYear: 20}
	})

	Describe("Create", func() {
		Context("when the owner has an active manager", func() {
			It("should file the request as PENDING with inclusive day count", func() {
				dto := leave.CreateLeaveDTO{
					LeaveTypeID: 10,
					StartDate:   "2026-03-02",
					EndDate:     "2026-03-04",
				}

				result, err := leaveService.Create(staff, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Status).To(Equal(leave.StatusPending))
				Expect(result.TotalDays).To(Equal(3.0))
				Expect(result.UserID).To(Equal(staff.ID))
			})

			It("should count a single-day request as one day", func() {
				dto := leave.CreateLeaveDTO{
					LeaveTypeID: 10,
					StartDate:   "2026-03-02",
					EndDate:     "2026-03-02",
				}

				result, err := leaveService.Create(staff, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.TotalDays).To(Equal(1.0))
			})

			It("should publish a leave requested event", func() {
				dto := leave.CreateLeaveDTO{
					LeaveTypeID: 10,
					StartDate:   "2026-03-02",
					EndDate:     "2026-03-04",
				}

				_, err := leaveService.Create(staff, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(publisher.published).To(HaveLen(1))
				Expect(publisher.published[0].EventType()).To(Equal(events.EventTypeLeaveRequested))
			})
		})

		Context("when the owner has no active manager", func() {
			It("should escalate straight to PENDING_ADMIN", func() {
				dto := leave.CreateLeaveDTO{
					LeaveTypeID: 10,
					StartDate:   "2026-03-02",
					EndDate:     "2026-03-03",
				}

				result, err := leaveService.Create(otherStaff, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Status).To(Equal(leave.StatusPendingAdmin))
			})

			It("should escalate when the manager is marked inactive", func() {
				directory.managers[staff.ID] = nil

				result, err := leaveService.Create(staff, leave.CreateLeaveDTO{
					LeaveTypeID: 10,
					StartDate:   "2026-03-02",
					EndDate:     "2026-03-03",
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Status).To(Equal(leave.StatusPendingAdmin))
			})
		})

		Context("when validation fails", func() {
			It("should reject end date before start date", func() {
				dto := leave.CreateLeaveDTO{
					LeaveTypeID: 10,
					StartDate:   "2026-03-04",
					EndDate:     "2026-03-02",
				}

				_, err := leaveService.Create(staff, dto)

				Expect(err).To(HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			})

			It("should reject a malformed date", func() {
				dto := leave.CreateLeaveDTO{
					LeaveTypeID: 10,
					StartDate:   "03/02/2026",
					EndDate:     "2026-03-04",
				}

				_, err := leaveService.Create(staff, dto)

				Expect(err).To(HaveOccurred())
			})

			It("should surface an unknown leave type as a validation error", func() {
				dto := leave.CreateLeaveDTO{
					LeaveTypeID: 999,
					StartDate:   "2026-03-02",
					EndDate:     "2026-03-04",
				}

				_, err := leaveService.Create(staff, dto)

				Expect(err).To(HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
				Expect(appErr.Code).To(Equal(internal.ErrCodeLeaveTypeNotFound))
			})
		})

		Context("when filing on behalf of someone else", func() {
			It("should allow an admin to file for any employee", func() {
				dto := leave.CreateLeaveDTO{
					UserID:      &staff.ID,
					LeaveTypeID: 10,
					StartDate:   "2026-03-02",
					EndDate:     "2026-03-03",
				}

				result, err := leaveService.Create(admin, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.UserID).To(Equal(staff.ID))
			})

			It("should deny an employee filing for a peer", func() {
				dto := leave.CreateLeaveDTO{
					UserID:      &staff.ID,
					LeaveTypeID: 10,
					StartDate:   "2026-03-02",
					EndDate:     "2026-03-03",
				}

				_, err := leaveService.Create(otherStaff, dto)

				Expect(err).To(HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeForbidden))
			})
		})
	})

	Describe("Decide", func() {
		var pending *leave.LeaveRequest

		BeforeEach(func() {
			var err error
			pending, err = leaveService.Create(staff, leave.CreateLeaveDTO{
				LeaveTypeID: 10,
				StartDate:   "2026-03-02",
				EndDate:     "2026-03-04",
			})
			Expect(err).ToNot(HaveOccurred())
			publisher.published = nil
		})

		Context("when the direct manager decides", func() {
			It("should approve and stamp approver and decision time", func() {
				result, err := leaveService.Decide(manager, pending.ID, leave.DecideLeaveDTO{Status: "APPROVED"})

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Status).To(Equal(leave.StatusApproved))
				Expect(result.ApproverID).ToNot(BeNil())
				Expect(*result.ApproverID).To(Equal(manager.ID))
				Expect(result.DecidedAt).ToNot(BeNil())
			})

			It("should reject with a comment", func() {
				comment := "coverage gap that week"
				result, err := leaveService.Decide(manager, pending.ID, leave.DecideLeaveDTO{
					Status:  "REJECTED",
					Comment: &comment,
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Status).To(Equal(leave.StatusRejected))
				Expect(result.ManagerComment).ToNot(BeNil())
			})

			It("should publish a leave decided event", func() {
				_, err := leaveService.Decide(manager, pending.ID, leave.DecideLeaveDTO{Status: "APPROVED"})

				Expect(err).ToNot(HaveOccurred())
				Expect(publisher.published).To(HaveLen(1))
				Expect(publisher.published[0].EventType()).To(Equal(events.EventTypeLeaveDecided))
			})
		})

		Context("when the actor is not allowed to decide", func() {
			It("should deny a manager deciding for a non-report", func() {
				escalated, err := leaveService.Create(otherStaff, leave.CreateLeaveDTO{
					LeaveTypeID: 10,
					StartDate:   "2026-03-02",
					EndDate:     "2026-03-03",
				})
				Expect(err).ToNot(HaveOccurred())

				_, err = leaveService.Decide(manager, escalated.ID, leave.DecideLeaveDTO{Status: "APPROVED"})

				Expect(err).To(HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeForbidden))
			})

			It("should deny an employee deciding anything", func() {
				_, err := leaveService.Decide(otherStaff, pending.ID, leave.DecideLeaveDTO{Status: "APPROVED"})

				Expect(err).To(HaveOccurred())
			})

			It("should deny a manager approving their own request", func() {
				own, err := leaveService.Create(manager, leave.CreateLeaveDTO{
					LeaveTypeID: 10,
					StartDate:   "2026-03-02",
					EndDate:     "2026-03-03",
				})
				Expect(err).ToNot(HaveOccurred())

				_, err = leaveService.Decide(manager, own.ID, leave.DecideLeaveDTO{Status: "APPROVED"})

				Expect(err).To(HaveOccurred())
			})
		})

		Context("when the admin decides an escalated request", func() {
			It("should approve a PENDING_ADMIN request", func() {
				escalated, err := leaveService.Create(otherStaff, leave.CreateLeaveDTO{
					LeaveTypeID: 10,
					StartDate:   "2026-03-02",
					EndDate:     "2026-03-03",
				})
				Expect(err).ToNot(HaveOccurred())
				Expect(escalated.Status).To(Equal(leave.StatusPendingAdmin))

				result, err := leaveService.Decide(admin, escalated.ID, leave.DecideLeaveDTO{Status: "APPROVED"})

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Status).To(Equal(leave.StatusApproved))
			})
		})

		Context("when the request was already decided", func() {
			It("should return a state error on the second decision", func() {
				_, err := leaveService.Decide(manager, pending.ID, leave.DecideLeaveDTO{Status: "APPROVED"})
				Expect(err).ToNot(HaveOccurred())

				_, err = leaveService.Decide(admin, pending.ID, leave.DecideLeaveDTO{Status: "REJECTED"})

				Expect(err).To(HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeState))
			})

			It("should reject a decision payload outside APPROVED/REJECTED", func() {
				_, err := leaveService.Decide(manager, pending.ID, leave.DecideLeaveDTO{Status: "CANCELLED"})

				Expect(err).To(HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			})
		})
	})

	Describe("Cancel", func() {
		var pending *leave.LeaveRequest

		BeforeEach(func() {
			var err error
			pending, err = leaveService.Create(staff, leave.CreateLeaveDTO{
				LeaveTypeID: 10,
				StartDate:   "2026-03-02",
				EndDate:     "2026-03-04",
			})
			Expect(err).ToNot(HaveOccurred())
			publisher.published = nil
		})

		It("should let the owner cancel a pending request", func() {
			result, err := leaveService.Cancel(staff, pending.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(leave.StatusCancelled))
			Expect(publisher.published).To(HaveLen(1))
			Expect(publisher.published[0].EventType()).To(Equal(events.EventTypeLeaveCancelled))
		})

		It("should deny cancellation by anyone but the owner", func() {
			_, err := leaveService.Cancel(manager, pending.ID)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeForbidden))
		})

		It("should refuse to cancel an approved request", func() {
			_, err := leaveService.Decide(manager, pending.ID, leave.DecideLeaveDTO{Status: "APPROVED"})
			Expect(err).ToNot(HaveOccurred())

			_, err = leaveService.Cancel(staff, pending.ID)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeState))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			_, err := leaveService.Create(staff, leave.CreateLeaveDTO{
				LeaveTypeID: 10,
				StartDate:   "2026-03-02",
				EndDate:     "2026-03-04",
			})
			Expect(err).ToNot(HaveOccurred())
			_, err = leaveService.Create(manager, leave.CreateLeaveDTO{
				LeaveTypeID: 10,
				StartDate:   "2026-03-09",
				EndDate:     "2026-03-10",
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should show an employee only their own requests", func() {
			results, err := leaveService.List(staff, "", 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(results[0].UserID).To(Equal(staff.ID))
		})

		It("should show a manager their reports' requests but not their own", func() {
			results, err := leaveService.List(manager, "", 20, 0)

			Expect(err).ToNot(HaveOccurred())
			for _, req := range results {
				Expect(req.UserID).ToNot(Equal(manager.ID))
			}
		})

		It("should show an admin everything", func() {
			results, err := leaveService.List(admin, "", 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(HaveLen(2))
		})

		It("should reject an unknown status filter", func() {
			_, err := leaveService.List(admin, "BOGUS", 20, 0)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("PendingApprovals", func() {
		BeforeEach(func() {
			_, err := leaveService.Create(staff, leave.CreateLeaveDTO{
				LeaveTypeID: 10,
				StartDate:   "2026-03-02",
				EndDate:     "2026-03-04",
			})
			Expect(err).ToNot(HaveOccurred())
			_, err = leaveService.Create(otherStaff, leave.CreateLeaveDTO{
				LeaveTypeID: 10,
				StartDate:   "2026-03-05",
				EndDate:     "2026-03-06",
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should give the admin both pending and escalated requests", func() {
			results, err := leaveService.PendingApprovals(admin, 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(HaveLen(2))
		})

		It("should give a manager only their reports' PENDING requests", func() {
			results, err := leaveService.PendingApprovals(manager, 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(results[0].UserID).To(Equal(staff.ID))
		})

		It("should deny the queue to plain employees", func() {
			_, err := leaveService.PendingApprovals(staff, 20, 0)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeForbidden))
		})
	})
})
