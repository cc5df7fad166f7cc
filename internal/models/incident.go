package models

import (
	"time"
)

type IncidentStatus string

const (
	StatusNew        IncidentStatus = "NEW"
	StatusInProgress IncidentStatus = "IN_PROGRESS"
	StatusPending    IncidentStatus = "PENDING"
	StatusResolved   IncidentStatus = "RESOLVED"
	StatusClosed     IncidentStatus = "CLOSED"
)

// Incident references its taxonomy rows and users by id; it never owns them.
// Deleting a lookup row does not cascade here, so a reference can go stale.
type Incident struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	Title            string          `json:"title" gorm:"not null"`
	Description      string          `json:"description" gorm:"type:text"`
	Status           IncidentStatus  `json:"status" gorm:"not null;default:'NEW'"`
	PriorityID       *uint           `json:"priorityId"`
	Priority         *Priority       `json:"priority" gorm:"foreignKey:PriorityID"`
	ImpactID         *uint           `json:"impactId"`
	Impact           *Impact         `json:"impact" gorm:"foreignKey:ImpactID"`
	UrgencyID        *uint           `json:"urgencyId"`
	Urgency          *Urgency        `json:"urgency" gorm:"foreignKey:UrgencyID"`
	CategoryID       *uint           `json:"categoryId"`
	Category         *Category       `json:"category" gorm:"foreignKey:CategoryID"`
	ResolutionCodeID *uint           `json:"resolutionCodeId"`
	ResolutionCode   *ResolutionCode `json:"resolutionCode" gorm:"foreignKey:ResolutionCodeID"`
	PendingReasonID  *uint           `json:"pendingReasonId"`
	PendingReason    *PendingReason  `json:"pendingReason" gorm:"foreignKey:PendingReasonID"`
	CreatedByID      *uint           `json:"createdById"`
	CreatedBy        *User           `json:"createdBy" gorm:"foreignKey:CreatedByID"`
	AssignedToID     *uint           `json:"assignedToId"`
	AssignedTo       *User           `json:"assignedTo" gorm:"foreignKey:AssignedToID"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func (Incident) TableName() string {
	return "incidents"
}
