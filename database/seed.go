package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/internadmin/internship-api/model"
	"github.com/internadmin/internship-api/utils/auth"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// RunSeeds runs all seeders against the given connection
func RunSeeds(db *gorm.DB) error {
	return NewSeeder(db).SeedAll()
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedDemoData(); err != nil {
		return fmt.Errorf("failed to seed demo data: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedAdminUser creates the default admin user
func (s *Seeder) SeedAdminUser() error {
	// Check if admin already exists
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Admin user already exists, skipping...")
		return nil
	}

	// Get admin credentials from environment variables
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Println("⚠️  ADMIN_EMAIL and ADMIN_PASSWORD environment variables not set, skipping admin user creation")
		return nil
	}

	// Hash password
	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.User{
		Email:        adminEmail,
		PasswordHash: passwordHash,
		Name:         "System Administrator",
		Role:         model.RoleAdmin,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Created admin user: %s\n", admin.Email)
	return nil
}

// SeedDemoData creates a demo intern with internships and remarks in every
// lifecycle state
func (s *Seeder) SeedDemoData() error {
	// Check if demo data already exists
	var count int64
	if err := s.db.Model(&model.Internship{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Internships already exist, skipping...")
		return nil
	}

	passwordHash, err := auth.HashPassword("internpass123")
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	intern := &model.User{
		Email:        "intern@example.com",
		PasswordHash: passwordHash,
		Name:         "Demo Intern",
		Role:         model.RoleUser,
	}

	if err := s.db.Create(intern).Error; err != nil {
		return err
	}

	now := time.Now()
	internships := []model.Internship{
		{
			UserID:      intern.ID,
			Title:       "Backend Engineering Internship",
			Role:        "Backend Developer",
			StartDate:   now.AddDate(0, -1, 0),
			EndDate:     now.AddDate(0, 2, 0),
			Description: "REST API development with Go and Postgres.",
			Status:      model.StatusActive,
		},
		{
			UserID:      intern.ID,
			Title:       "Frontend Engineering Internship",
			Role:        "Frontend Developer",
			StartDate:   now.AddDate(0, -6, 0),
			EndDate:     now.AddDate(0, -3, 0),
			Description: "Component library work for the admin dashboard.",
			Status:      model.StatusCompleted,
		},
		{
			UserID:      intern.ID,
			Title:       "Data Engineering Internship",
			Role:        "Data Engineer",
			StartDate:   now.AddDate(0, -4, 0),
			EndDate:     now.AddDate(0, -2, 0),
			Description: "Reporting pipeline prototyping.",
			Status:      model.StatusCancelled,
		},
	}

	for i := range internships {
		if err := s.db.Create(&internships[i]).Error; err != nil {
			return err
		}
	}

	remarks := []model.Remark{
		{
			InternshipID: internships[0].ID,
			UserID:       intern.ID,
			Message:      "Could the end date be pushed back by two weeks?",
			RequestType:  model.RequestExtension,
			Status:       model.RemarkPending,
		},
		{
			InternshipID:  internships[1].ID,
			UserID:        intern.ID,
			Message:       "The listed role should say Frontend Developer, not Designer.",
			RequestType:   model.RequestChange,
			Status:        model.RemarkResolved,
			AdminResponse: "Updated the role field, thanks for flagging.",
		},
	}

	for i := range remarks {
		if err := s.db.Create(&remarks[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Created demo intern %s with %d internships and %d remarks\n",
		intern.Email, len(internships), len(remarks))
	return nil
}
