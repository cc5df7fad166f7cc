package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/servicedesk/backend/internal/models"
	"github.com/servicedesk/backend/internal/services"
)

// RoleController exposes the role subset of the directory. Roles carry no
// update operation; a row is created once and looked up by id or name.
type RoleController struct {
	service *services.UserService
}

func NewRoleController(service *services.UserService) *RoleController {
	return &RoleController{service: service}
}

type RoleRequest struct {
	Name models.RoleName `json:"name" binding:"required"`
}

func (rc *RoleController) Create(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := rc.service.CreateRole(&models.Role{Name: req.Name})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, role)
}

func (rc *RoleController) GetAll(c *gin.Context) {
	roles, err := rc.service.GetAllRoles()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

func (rc *RoleController) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	role, err := rc.service.GetRoleByID(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

func (rc *RoleController) GetByName(c *gin.Context) {
	role, err := rc.service.GetRoleByName(models.RoleName(c.Param("name")))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

func (rc *RoleController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := rc.service.DeleteRole(id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role deleted"})
}
