package db

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/gym-scheduler/internal/config"
	"github.com/BruksfildServices01/gym-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/timezone"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := SeedDefaultGym(db, cfg.Gym); err != nil {
		log.Fatalf("failed to seed gym: %v", err)
	}

	return db
}

// Migrate creates the schema plus the partial unique index that keeps two
// live appointments from sharing a trainer start slot.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.GymCenter{},
		&models.Service{},
		&models.Trainer{},
		&models.AvailabilityWindow{},
		&models.MemberProfile{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	return db.Exec(fmt.Sprintf(`
        CREATE UNIQUE INDEX IF NOT EXISTS %s
        ON appointments (trainer_id, date, start_time)
        WHERE status <> 'Cancelled'
    `, repository.SlotIndexName)).Error
}

// SeedDefaultGym inserts the configured gym when none exists and fills in a
// missing timezone on existing ones.
func SeedDefaultGym(db *gorm.DB, gym config.GymConfig) error {
	tz := gym.Timezone
	if !timezone.IsValid(tz) {
		tz = timezone.DefaultTimezone
	}

	var existing models.GymCenter
	err := db.Order("id").First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Printf("seeding default gym %q (%s)", gym.Name, tz)
		return db.Create(&models.GymCenter{
			Name:        gym.Name,
			OpeningTime: "06:00",
			ClosingTime: "23:00",
			Timezone:    tz,
			Active:      true,
		}).Error
	case err != nil:
		return err
	}

	return db.Exec(`
        UPDATE gym_centers
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, tz).Error
}
