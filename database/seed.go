package database

import (
	"fmt"
	"log"
	"time"

	"github.com/learnfx/academy-api/model"
	"github.com/learnfx/academy-api/utils/auth"
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

// RunSeeds seeds demo data for local development
func RunSeeds(db *gorm.DB) error {
	return NewSeeder(db).SeedAll()
}

// SeedAll runs all seed functions in dependency order
func (s *Seeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if err := s.SeedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	if err := s.SeedCourses(); err != nil {
		return fmt.Errorf("failed to seed courses: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedUsers creates demo users: one instructor, one premium student and one
// free student. Passwords are all "password123".
func (s *Seeder) SeedUsers() error {
	var count int64
	if err := s.db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Users already exist, skipping...")
		return nil
	}

	passwordHash, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}

	subscriptionEnd := time.Now().AddDate(1, 0, 0)
	users := []model.User{
		{
			Email:        "instructor@example.com",
			PasswordHash: passwordHash,
			Name:         "Ava Instructor",
			Role:         "instructor",
		},
		{
			Email:               "premium@example.com",
			PasswordHash:        passwordHash,
			Name:                "Priya Premium",
			Role:                "student",
			IsPremium:           true,
			SubscriptionEndDate: &subscriptionEnd,
		},
		{
			Email:        "student@example.com",
			PasswordHash: passwordHash,
			Name:         "Sam Student",
			Role:         "student",
		},
	}

	return s.db.Create(&users).Error
}

// SeedCategories creates the default course categories
func (s *Seeder) SeedCategories() error {
	var count int64
	if err := s.db.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Categories already exist, skipping...")
		return nil
	}

	categories := []model.Category{
		{Name: "Forex", Slug: "forex", Description: "Foreign exchange trading", IsActive: true},
		{Name: "Crypto", Slug: "crypto", Description: "Cryptocurrency markets", IsActive: true},
		{Name: "Stocks", Slug: "stocks", Description: "Equity markets and analysis", IsActive: true},
	}

	return s.db.Create(&categories).Error
}

// SeedCourses creates demo courses with lessons
func (s *Seeder) SeedCourses() error {
	var count int64
	if err := s.db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Courses already exist, skipping...")
		return nil
	}

	var forex model.Category
	if err := s.db.Where("slug = ?", "forex").First(&forex).Error; err != nil {
		return err
	}
	var instructor model.User
	if err := s.db.Where("role = ?", "instructor").First(&instructor).Error; err != nil {
		return err
	}

	now := time.Now()
	courses := []model.Course{
		{
			Title:            "Forex Fundamentals",
			Slug:             "fx-101",
			Description:      "Currency pairs, pips and the mechanics of the spot market.",
			ShortDescription: "Start trading forex from zero.",
			CategoryID:       forex.ID,
			InstructorID:     instructor.ID,
			DifficultyLevel:  model.DifficultyBeginner,
			DurationHours:    6,
			IsPublished:      true,
			PublishedAt:      &now,
			Lessons: []model.Lesson{
				{Title: "Introduction", Slug: "intro", Order: 1, LessonType: model.LessonTypeVideo, IsPreview: true, IsPublished: true},
				{Title: "Currency Pairs", Slug: "currency-pairs", Order: 2, LessonType: model.LessonTypeVideo, IsPublished: true},
				{Title: "Reading Charts", Slug: "reading-charts", Order: 3, LessonType: model.LessonTypeVideo, IsPublished: true},
				{Title: "Your First Trade", Slug: "first-trade", Order: 4, LessonType: model.LessonTypeAssignment, IsPublished: true},
			},
		},
		{
			Title:            "Advanced Price Action",
			Slug:             "fx-price-action",
			Description:      "Institutional order flow and price action strategies.",
			ShortDescription: "Trade like the institutions.",
			CategoryID:       forex.ID,
			InstructorID:     instructor.ID,
			DifficultyLevel:  model.DifficultyAdvanced,
			DurationHours:    12,
			IsPremium:        true,
			IsPublished:      true,
			PublishedAt:      &now,
			Lessons: []model.Lesson{
				{Title: "Market Structure", Slug: "market-structure", Order: 1, LessonType: model.LessonTypeVideo, IsPreview: true, IsPublished: true},
				{Title: "Liquidity Concepts", Slug: "liquidity", Order: 2, LessonType: model.LessonTypeVideo, IsPublished: true},
				{Title: "Entry Models", Slug: "entry-models", Order: 3, LessonType: model.LessonTypeVideo, IsPublished: true},
			},
		},
	}

	return s.db.Create(&courses).Error
}
