package database

import (
	"fmt"
	"log"
	"os"

	"github.com/servicedesk/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	var err error
	// TranslateError turns unique-index violations into gorm.ErrDuplicatedKey,
	// which is how concurrent duplicate creates are serialized into one
	// success and one conflict. Foreign keys are deliberately not enforced
	// at the schema level: lookup-row deletion must succeed even while
	// incidents still reference the row.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})

	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("Database connected successfully")
}

func AutoMigrate() {
	err := DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Priority{},
		&models.Impact{},
		&models.Urgency{},
		&models.Category{},
		&models.ResolutionCode{},
		&models.PendingReason{},
		&models.Incident{},
	)

	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	fmt.Println("Database migrated successfully")
}
