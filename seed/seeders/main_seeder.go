package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db             *gorm.DB
	curriculumPath string
}

// NewMainSeeder creates a new main seeder. An empty curriculumPath uses the
// embedded default curriculum.
func NewMainSeeder(db *gorm.DB, curriculumPath string) *MainSeeder {
	return &MainSeeder{db: db, curriculumPath: curriculumPath}
}

// SeedAll runs all seeders in the correct order
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if _, err := s.SeedCurriculumOnly(); err != nil {
		log.Printf("Curriculum seeding failed: %v", err)
		return err
	}

	adminSeeder := NewAdminSeeder(s.db)
	if err := adminSeeder.SeedAdmin(); err != nil {
		log.Printf("Admin seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedCurriculumOnly reconciles the curriculum without touching accounts.
func (s *MainSeeder) SeedCurriculumOnly() (*Result, error) {
	curriculum, err := LoadCurriculum(s.curriculumPath)
	if err != nil {
		return nil, err
	}

	return NewCurriculumSeeder(s.db, curriculum).Seed()
}

// SeedAdminOnly creates the default admin account only.
func (s *MainSeeder) SeedAdminOnly() error {
	return NewAdminSeeder(s.db).SeedAdmin()
}
