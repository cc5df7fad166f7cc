package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/servicedesk/backend/internal/models"
	"github.com/servicedesk/backend/internal/services"
)

// LookupController exposes one taxonomy kind over HTTP. One instance is
// mounted per kind by the router.
type LookupController[T any, P interface {
	*T
	models.LookupRow
}] struct {
	service *services.LookupService[T, P]
}

func NewLookupController[T any, P interface {
	*T
	models.LookupRow
}](service *services.LookupService[T, P]) *LookupController[T, P] {
	return &LookupController[T, P]{service: service}
}

func (lc *LookupController[T, P]) Create(c *gin.Context) {
	var row T
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := lc.service.Create(&row)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (lc *LookupController[T, P]) GetAll(c *gin.Context) {
	rows, err := lc.service.GetAll()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (lc *LookupController[T, P]) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	row, err := lc.service.GetByID(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (lc *LookupController[T, P]) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var row T
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := lc.service.Update(id, &row)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (lc *LookupController[T, P]) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := lc.service.Delete(id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
