package services

import (
	"errors"

	"github.com/servicedesk/backend/internal/apperrors"
	"github.com/servicedesk/backend/internal/logger"
	"github.com/servicedesk/backend/internal/models"
	"gorm.io/gorm"
)

// LookupService is the reference-data store, written once and instantiated
// per taxonomy kind (Priority, Impact, Urgency, Category, ResolutionCode,
// PendingReason). The label column is unique per kind; the unique index is
// what serializes concurrent creates of the same label.
type LookupService[T any, P interface {
	*T
	models.LookupRow
}] struct {
	db   *gorm.DB
	kind string
}

func NewLookupService[T any, P interface {
	*T
	models.LookupRow
}](db *gorm.DB, kind string) *LookupService[T, P] {
	return &LookupService[T, P]{db: db, kind: kind}
}

func (s *LookupService[T, P]) Create(row *T) (*T, error) {
	label := P(row).LabelValue()

	var existing T
	err := s.db.Where(P(row).LabelColumn()+" = ?", label).First(&existing).Error
	if err == nil {
		return nil, apperrors.Conflict(s.kind + " already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Storage("lookup "+s.kind, err)
	}

	P(row).SetRowID(0)
	if err := s.db.Create(row).Error; err != nil {
		// A concurrent writer may win the race between the check above and
		// this insert; the unique index reports it as a duplicated key.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict(s.kind + " already exists")
		}
		return nil, apperrors.Storage("create "+s.kind, err)
	}

	logger.Info("Lookup row created", map[string]interface{}{
		"kind":  s.kind,
		"id":    P(row).RowID(),
		"label": label,
	})
	return row, nil
}

func (s *LookupService[T, P]) GetByID(id uint) (*T, error) {
	var row T
	if err := s.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(s.kind)
		}
		return nil, apperrors.Storage("get "+s.kind, err)
	}
	return &row, nil
}

func (s *LookupService[T, P]) GetAll() ([]T, error) {
	var rows []T
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, apperrors.Storage("list "+s.kind, err)
	}
	return rows, nil
}

// Update replaces all fields except the id, which is forced to the existing
// value regardless of what the caller supplied.
func (s *LookupService[T, P]) Update(id uint, updated *T) (*T, error) {
	var existing T
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(s.kind)
		}
		return nil, apperrors.Storage("get "+s.kind, err)
	}

	P(updated).SetRowID(P(&existing).RowID())
	if err := s.db.Save(updated).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict(s.kind + " already exists")
		}
		return nil, apperrors.Storage("update "+s.kind, err)
	}
	return updated, nil
}

// Delete removes the row. Incidents referencing it are not checked; a stale
// reference is tolerated on dereference instead.
func (s *LookupService[T, P]) Delete(id uint) error {
	if err := s.db.Delete(new(T), id).Error; err != nil {
		return apperrors.Storage("delete "+s.kind, err)
	}
	return nil
}
