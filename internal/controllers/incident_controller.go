package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/servicedesk/backend/internal/models"
	"github.com/servicedesk/backend/internal/services"
)

type IncidentController struct {
	service *services.IncidentService
}

func NewIncidentController(service *services.IncidentService) *IncidentController {
	return &IncidentController{service: service}
}

type IncidentRequest struct {
	Title            string                `json:"title" binding:"required"`
	Description      string                `json:"description"`
	Status           models.IncidentStatus `json:"status"`
	PriorityID       *uint                 `json:"priorityId"`
	ImpactID         *uint                 `json:"impactId"`
	UrgencyID        *uint                 `json:"urgencyId"`
	CategoryID       *uint                 `json:"categoryId"`
	ResolutionCodeID *uint                 `json:"resolutionCodeId"`
	PendingReasonID  *uint                 `json:"pendingReasonId"`
	CreatedByID      *uint                 `json:"createdById"`
	AssignedToID     *uint                 `json:"assignedToId"`
}

func (r *IncidentRequest) toModel() *models.Incident {
	return &models.Incident{
		Title:            r.Title,
		Description:      r.Description,
		Status:           r.Status,
		PriorityID:       r.PriorityID,
		ImpactID:         r.ImpactID,
		UrgencyID:        r.UrgencyID,
		CategoryID:       r.CategoryID,
		ResolutionCodeID: r.ResolutionCodeID,
		PendingReasonID:  r.PendingReasonID,
		CreatedByID:      r.CreatedByID,
		AssignedToID:     r.AssignedToID,
	}
}

type StatusRequest struct {
	Status           models.IncidentStatus `json:"status" binding:"required"`
	ResolutionCodeID *uint                 `json:"resolutionCodeId"`
	PendingReasonID  *uint                 `json:"pendingReasonId"`
}

func (ic *IncidentController) Create(c *gin.Context) {
	var req IncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := ic.service.Create(req.toModel())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, incident)
}

func (ic *IncidentController) GetAll(c *gin.Context) {
	var (
		incidents []models.Incident
		err       error
	)
	switch {
	case c.Query("createdBy") != "":
		var userID uint64
		userID, err = strconv.ParseUint(c.Query("createdBy"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid createdBy"})
			return
		}
		incidents, err = ic.service.GetByCreator(uint(userID))
	case c.Query("assignedTo") != "":
		var userID uint64
		userID, err = strconv.ParseUint(c.Query("assignedTo"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignedTo"})
			return
		}
		incidents, err = ic.service.GetByAssignee(uint(userID))
	default:
		incidents, err = ic.service.GetAll()
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, incidents)
}

func (ic *IncidentController) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	incident, err := ic.service.GetByID(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, incident)
}

func (ic *IncidentController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req IncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := ic.service.Update(id, req.toModel())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, incident)
}

func (ic *IncidentController) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := ic.service.UpdateStatus(id, req.Status, req.ResolutionCodeID, req.PendingReasonID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, incident)
}

func (ic *IncidentController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ic.service.Delete(id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Incident deleted"})
}
