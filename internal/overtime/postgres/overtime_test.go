package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hrportal/workforce/internal"
	"github.com/hrportal/workforce/internal/overtime"
)

func TestOvertimeRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "OvertimeRepository Suite")
}

type SQLiteUser struct {
	ID        int64  `gorm:"primaryKey"`
	FullName  string `gorm:"column:full_name;not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	Role      string `gorm:"column:role;not null"`
	ManagerID *int64 `gorm:"column:manager_id"`
	IsActive  bool   `gorm:"column:is_active;default:true"`
}

func (SQLiteUser) TableName() string {
	return "users"
}

type SQLiteOvertimeClaim struct {
	ID             int64      `gorm:"primaryKey"`
	UserID         int64      `gorm:"column:user_id;not null"`
	OTDate         time.Time  `gorm:"column:ot_date"`
	StartTime      string     `gorm:"column:start_time"`
	EndTime        string     `gorm:"column:end_time"`
	TotalHours     string     `gorm:"column:total_hours"`
	Status         string     `gorm:"column:status;default:'PENDING'"`
	Reason         string     `gorm:"column:reason"`
	ManagerComment *string    `gorm:"column:manager_comment"`
	ApproverID     *int64     `gorm:"column:approver_id"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	DecidedAt      *time.Time `gorm:"column:decided_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (SQLiteOvertimeClaim) TableName() string {
	return "overtime_claims"
}

var _ = Describe("OvertimeRepository", func() {
	var (
		db   *gorm.DB
		repo overtime.Repository
	)

	managerID := int64(1)

	newClaim := func(userID int64, status string, createdAt time.Time) *overtime.OvertimeClaim {
		return &overtime.OvertimeClaim{
			UserID:     userID,
			OTDate:     time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			StartTime:  "18:00:00",
			EndTime:    "20:30:00",
			TotalHours: decimal.RequireFromString("2.5"),
			Status:     overtime.Status(status),
			Reason:     "release night",
			CreatedAt:  createdAt,
			UpdatedAt:  createdAt,
		}
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteUser{}, &SQLiteOvertimeClaim{})
		Expect(err).NotTo(HaveOccurred())

		users := []SQLiteUser{
			{ID: 1, FullName: "MANAGER", Email: "manager@corp.test", Role: "MANAGER", IsActive: true},
			{ID: 2, FullName: "STAFF", Email: "staff@corp.test", Role: "EMPLOYEE", ManagerID: &managerID, IsActive: true},
			{ID: 3, FullName: "LONER", Email: "loner@corp.test", Role: "EMPLOYEE", IsActive: true},
		}
		Expect(db.Create(&users).Error).NotTo(HaveOccurred())

		repo = NewOvertimeRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create and GetByID", func() {
		It("should persist and retrieve an overtime claim", func() {
			claim := newClaim(2, "PENDING", time.Now())

			err := repo.Create(claim)
			Expect(err).NotTo(HaveOccurred())
			Expect(claim.ID).To(BeNumerically(">", 0))

			retrieved, err := repo.GetByID(claim.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.UserID).To(Equal(int64(2)))
			Expect(retrieved.TotalHours.String()).To(Equal("2.5"))
		})

		It("should return the not found sentinel for a missing ID", func() {
			retrieved, err := repo.GetByID(99999)
			Expect(err).To(Equal(internal.ErrOvertimeNotFound))
			Expect(retrieved).To(BeNil())
		})
	})

	Describe("DecideIfPending", func() {
		It("should apply a decision exactly once", func() {
			claim := newClaim(2, "PENDING", time.Now())
			Expect(repo.Create(claim)).NotTo(HaveOccurred())

			applied, err := repo.DecideIfPending(claim.ID, overtime.StatusApproved, nil, 1, time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(applied).To(BeTrue())

			applied, err = repo.DecideIfPending(claim.ID, overtime.StatusRejected, nil, 1, time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(applied).To(BeFalse())

			retrieved, err := repo.GetByID(claim.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.Status).To(Equal(overtime.StatusApproved))
		})
	})

	Describe("queues", func() {
		BeforeEach(func() {
			base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
			Expect(repo.Create(newClaim(2, "PENDING", base))).NotTo(HaveOccurred())
			Expect(repo.Create(newClaim(3, "PENDING", base.Add(time.Hour)))).NotTo(HaveOccurred())
			Expect(repo.Create(newClaim(2, "APPROVED", base.Add(2*time.Hour)))).NotTo(HaveOccurred())
		})

		It("should give the admin queue every pending claim oldest first", func() {
			claims, err := repo.GetPendingForAdmin(20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims).To(HaveLen(2))
			Expect(claims[0].CreatedAt.Before(claims[1].CreatedAt)).To(BeTrue())
		})

		It("should restrict a manager's queue to direct reports", func() {
			claims, err := repo.GetPendingForManager(1, 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims).To(HaveLen(1))
			Expect(claims[0].UserID).To(Equal(int64(2)))
		})
	})
})
