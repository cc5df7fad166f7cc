package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/servicedesk/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
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
	require.NoError(t, err)

	return db
}
