package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servicedesk/backend/internal/apperrors"
	"github.com/servicedesk/backend/internal/models"
)

func TestLookupCreateDuplicateLabel(t *testing.T) {
	db := setupTestDB(t)
	priorities := NewLookupService[models.Priority](db, "priority")

	first, err := priorities.Create(&models.Priority{Level: "High"})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	_, err = priorities.Create(&models.Priority{Level: "High"})
	require.Error(t, err)
	var conflict *apperrors.ConflictError
	assert.ErrorAs(t, err, &conflict)

	// The first row is unaffected
	got, err := priorities.GetByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "High", got.Level)
}

func TestLookupGetByIDMissing(t *testing.T) {
	db := setupTestDB(t)
	impacts := NewLookupService[models.Impact](db, "impact")

	_, err := impacts.GetByID(42)
	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestLookupUpdatePreservesID(t *testing.T) {
	db := setupTestDB(t)
	urgencies := NewLookupService[models.Urgency](db, "urgency")

	created, err := urgencies.Create(&models.Urgency{Level: "Low"})
	require.NoError(t, err)

	// A caller-supplied id is ignored; the existing id wins.
	updated, err := urgencies.Update(created.ID, &models.Urgency{ID: 999, Level: "Immediate"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	got, err := urgencies.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Immediate", got.Level)
}

func TestLookupUpdateMissing(t *testing.T) {
	db := setupTestDB(t)
	categories := NewLookupService[models.Category](db, "category")

	_, err := categories.Update(7, &models.Category{Name: "Network"})
	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestLookupDeleteThenGet(t *testing.T) {
	db := setupTestDB(t)
	reasons := NewLookupService[models.PendingReason](db, "pending reason")

	created, err := reasons.Create(&models.PendingReason{Reason: "Awaiting vendor"})
	require.NoError(t, err)

	require.NoError(t, reasons.Delete(created.ID))

	_, err = reasons.GetByID(created.ID)
	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestLookupGetAll(t *testing.T) {
	db := setupTestDB(t)
	codes := NewLookupService[models.ResolutionCode](db, "resolution code")

	_, err := codes.Create(&models.ResolutionCode{Code: "FIXED", Description: "Root cause fixed"})
	require.NoError(t, err)
	_, err = codes.Create(&models.ResolutionCode{Code: "WORKAROUND"})
	require.NoError(t, err)

	rows, err := codes.GetAll()
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestLookupDeleteDoesNotCheckReferences(t *testing.T) {
	db := setupTestDB(t)
	priorities := NewLookupService[models.Priority](db, "priority")
	incidents := NewIncidentService(db)

	priority, err := priorities.Create(&models.Priority{Level: "Critical"})
	require.NoError(t, err)

	incident, err := incidents.Create(&models.Incident{
		Title:      "Disk full",
		PriorityID: &priority.ID,
	})
	require.NoError(t, err)

	// Deletion succeeds even though an incident still references the row;
	// the incident keeps the now-stale id.
	require.NoError(t, priorities.Delete(priority.ID))

	got, err := incidents.GetByID(incident.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PriorityID)
	assert.Equal(t, priority.ID, *got.PriorityID)
	assert.Nil(t, got.Priority)
}
