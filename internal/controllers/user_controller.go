package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/servicedesk/backend/internal/models"
	"github.com/servicedesk/backend/internal/services"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

type UserRequest struct {
	Username string        `json:"username" binding:"required"`
	Email    string        `json:"email" binding:"required,email"`
	FullName string        `json:"fullName"`
	Password string        `json:"password"`
	Roles    []models.Role `json:"roles"`
}

func (r *UserRequest) toModel() *models.User {
	return &models.User{
		Username: r.Username,
		Email:    r.Email,
		FullName: r.FullName,
		Password: r.Password,
		Roles:    r.Roles,
	}
}

func (uc *UserController) Create(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return
	}

	user, err := uc.service.CreateUser(req.toModel())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (uc *UserController) GetAll(c *gin.Context) {
	users, err := uc.service.GetAllUsers()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (uc *UserController) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := uc.service.GetUserByID(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := uc.service.UpdateUser(id, req.toModel())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := uc.service.DeleteUser(id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
