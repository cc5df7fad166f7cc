package services

import (
	"errors"

	"github.com/servicedesk/backend/internal/apperrors"
	"github.com/servicedesk/backend/internal/logger"
	"github.com/servicedesk/backend/internal/models"
	"gorm.io/gorm"
)

// IncidentService owns the incident lifecycle and is the integration point
// for relational integrity: every non-null reference is resolved against its
// target table before the incident is written.
type IncidentService struct {
	db *gorm.DB
}

func NewIncidentService(db *gorm.DB) *IncidentService {
	return &IncidentService{db: db}
}

func (s *IncidentService) withRefs() *gorm.DB {
	return s.db.
		Preload("Priority").
		Preload("Impact").
		Preload("Urgency").
		Preload("Category").
		Preload("ResolutionCode").
		Preload("PendingReason").
		Preload("CreatedBy").
		Preload("AssignedTo")
}

// validateReferences fails with InvalidReference for the first non-null
// relational field whose target row is missing.
func (s *IncidentService) validateReferences(incident *models.Incident) error {
	refs := []struct {
		field string
		id    *uint
		model interface{}
	}{
		{"priority", incident.PriorityID, &models.Priority{}},
		{"impact", incident.ImpactID, &models.Impact{}},
		{"urgency", incident.UrgencyID, &models.Urgency{}},
		{"category", incident.CategoryID, &models.Category{}},
		{"resolutionCode", incident.ResolutionCodeID, &models.ResolutionCode{}},
		{"pendingReason", incident.PendingReasonID, &models.PendingReason{}},
		{"createdBy", incident.CreatedByID, &models.User{}},
		{"assignedTo", incident.AssignedToID, &models.User{}},
	}

	for _, ref := range refs {
		if ref.id == nil {
			continue
		}
		var count int64
		if err := s.db.Model(ref.model).Where("id = ?", *ref.id).Count(&count).Error; err != nil {
			return apperrors.Storage("resolve "+ref.field, err)
		}
		if count == 0 {
			return apperrors.InvalidReference(ref.field, *ref.id)
		}
	}
	return nil
}

// clearRefs drops any nested structs a caller may have attached so only the
// id columns drive the write; otherwise gorm would upsert the associations.
func clearRefs(incident *models.Incident) {
	incident.Priority = nil
	incident.Impact = nil
	incident.Urgency = nil
	incident.Category = nil
	incident.ResolutionCode = nil
	incident.PendingReason = nil
	incident.CreatedBy = nil
	incident.AssignedTo = nil
}

func (s *IncidentService) Create(incident *models.Incident) (*models.Incident, error) {
	if incident.Status == "" {
		incident.Status = models.StatusNew
	}
	if err := s.validateReferences(incident); err != nil {
		return nil, err
	}

	clearRefs(incident)
	incident.ID = 0
	if err := s.db.Create(incident).Error; err != nil {
		return nil, apperrors.Storage("create incident", err)
	}

	logger.WithIncident(incident.ID).Info("Incident created")
	return s.GetByID(incident.ID)
}

// Update is a full replacement; the id is forced to the existing value.
// Partial updates are not supported.
func (s *IncidentService) Update(id uint, updated *models.Incident) (*models.Incident, error) {
	var existing models.Incident
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("incident")
		}
		return nil, apperrors.Storage("get incident", err)
	}

	if updated.Status == "" {
		updated.Status = models.StatusNew
	}
	if err := s.validateReferences(updated); err != nil {
		return nil, err
	}

	clearRefs(updated)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.db.Save(updated).Error; err != nil {
		return nil, apperrors.Storage("update incident", err)
	}
	return s.GetByID(updated.ID)
}

// UpdateStatus is the dedicated transition call. No transition graph is
// enforced; resolution code and pending reason may be set alongside.
func (s *IncidentService) UpdateStatus(id uint, status models.IncidentStatus, resolutionCodeID, pendingReasonID *uint) (*models.Incident, error) {
	var incident models.Incident
	if err := s.db.First(&incident, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("incident")
		}
		return nil, apperrors.Storage("get incident", err)
	}

	incident.Status = status
	if resolutionCodeID != nil {
		incident.ResolutionCodeID = resolutionCodeID
	}
	if pendingReasonID != nil {
		incident.PendingReasonID = pendingReasonID
	}
	if err := s.validateReferences(&incident); err != nil {
		return nil, err
	}

	clearRefs(&incident)
	if err := s.db.Save(&incident).Error; err != nil {
		return nil, apperrors.Storage("update incident status", err)
	}

	logger.WithIncident(incident.ID).WithField("status", status).Info("Incident status updated")
	return s.GetByID(incident.ID)
}

func (s *IncidentService) GetByID(id uint) (*models.Incident, error) {
	var incident models.Incident
	if err := s.withRefs().First(&incident, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("incident")
		}
		return nil, apperrors.Storage("get incident", err)
	}
	return &incident, nil
}

func (s *IncidentService) GetAll() ([]models.Incident, error) {
	var incidents []models.Incident
	if err := s.withRefs().Find(&incidents).Error; err != nil {
		return nil, apperrors.Storage("list incidents", err)
	}
	return incidents, nil
}

// GetByCreator lists incidents reported by the given user.
func (s *IncidentService) GetByCreator(userID uint) ([]models.Incident, error) {
	var incidents []models.Incident
	if err := s.withRefs().Where("created_by_id = ?", userID).Find(&incidents).Error; err != nil {
		return nil, apperrors.Storage("list incidents by creator", err)
	}
	return incidents, nil
}

// GetByAssignee lists incidents currently assigned to the given user.
func (s *IncidentService) GetByAssignee(userID uint) ([]models.Incident, error) {
	var incidents []models.Incident
	if err := s.withRefs().Where("assigned_to_id = ?", userID).Find(&incidents).Error; err != nil {
		return nil, apperrors.Storage("list incidents by assignee", err)
	}
	return incidents, nil
}

func (s *IncidentService) Delete(id uint) error {
	if err := s.db.Delete(&models.Incident{}, id).Error; err != nil {
		return apperrors.Storage("delete incident", err)
	}
	return nil
}
