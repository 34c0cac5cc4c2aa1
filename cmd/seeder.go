package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hrportal/workforce/internal/employee"
	"github.com/hrportal/workforce/internal/holiday"
	"github.com/hrportal/workforce/internal/leavetype"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with an admin account, a sample team and reference data.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := gorm.Open(gormpostgres.Open(cfg.Database.Source), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{"leave_requests", "overtime_claims", "holidays", "leave_types", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

		adminID := seedUser(db, &employee.Employee{
			Email:        "admin@workforce.local",
			FullName:     "SYSTEM ADMIN",
			PasswordHash: string(hash),
			Role:         employee.RoleAdmin,
			Designation:  "HR Administrator",
			IsActive:     true,
		})

		managerID := seedUser(db, &employee.Employee{
			Email:        "manager@workforce.local",
			FullName:     "ASHA RANE",
			PasswordHash: string(hash),
			Role:         employee.RoleManager,
			Designation:  "Engineering Manager",
			ManagerID:    &adminID,
			IsActive:     true,
		})

		seedUser(db, &employee.Employee{
			Email:        "employee@workforce.local",
			FullName:     "RAVI IYER",
			PasswordHash: string(hash),
			Role:         employee.RoleEmployee,
			Designation:  "Software Engineer",
			ManagerID:    &managerID,
			IsActive:     true,
		})

		leaveTypes := []leavetype.LeaveType{
			{Name: "SICK LEAVE", DefaultDaysPerYear: 12, CarryForward: false, ColorHex: "#E53935"},
			{Name: "WEEK OFF", DefaultDaysPerYear: 104, CarryForward: false, ColorHex: "#8E24AA"},
			{Name: "ANNUAL LEAVE", DefaultDaysPerYear: 20, CarryForward: true, ColorHex: "#1E88E5"},
			{Name: "LEAVE IN OT", DefaultDaysPerYear: 0, CarryForward: false, ColorHex: "#FB8C00"},
			{Name: "WORK FROM HOME", DefaultDaysPerYear: 365, CarryForward: false, ColorHex: "#43A047"},
		}
		for i := range leaveTypes {
			lt := leaveTypes[i]
			var existing leavetype.LeaveType
			if err := db.Where("name = ?", lt.Name).First(&existing).Error; err == nil {
				continue
			}
			if err := db.Create(&lt).Error; err != nil {
				log.Fatalf("failed to seed leave type %s: %v", lt.Name, err)
			}
			fmt.Println("Seeded leave type:", lt.Name)
		}

		year := time.Now().Year()
		holidays := []holiday.Holiday{
			{Date: time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC), Name: "New Year's Day", Type: holiday.TypePublic, IsRecurring: true},
			{Date: time.Date(year, 5, 1, 0, 0, 0, 0, time.UTC), Name: "Labour Day", Type: holiday.TypePublic, IsRecurring: true},
			{Date: time.Date(year, 12, 25, 0, 0, 0, 0, time.UTC), Name: "Christmas Day", Type: holiday.TypePublic, IsRecurring: true},
		}
		for i := range holidays {
			h := holidays[i]
			var existing holiday.Holiday
			if err := db.Where("date = ?", h.Date).First(&existing).Error; err == nil {
				continue
			}
			if err := db.Create(&h).Error; err != nil {
				log.Fatalf("failed to seed holiday %s: %v", h.Name, err)
			}
			fmt.Println("Seeded holiday:", h.Name)
		}

		fmt.Println("Seeding complete")
	},
}

func seedUser(db *gorm.DB, emp *employee.Employee) int64 {
	var existing employee.Employee
	if err := db.Where("email = ?", emp.Email).First(&existing).Error; err == nil {
		fmt.Println("User already exists:", emp.Email)
		return existing.ID
	}

	if err := db.Create(emp).Error; err != nil {
		log.Fatalf("failed to seed user %s: %v", emp.Email, err)
	}
	fmt.Println("Seeded user:", emp.Email)
	return emp.ID
}
