package auth

import (
	"net/http"

	"campusit/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Login authenticates a user and returns a signed JWT
// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	resp, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Register files a new HOD account pending Dean approval
// POST /api/v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	user, err := h.service.Register(&req)
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account registered. Awaiting Dean approval.",
		"user":    user,
	})
}

// ListAdmins returns admin accounts for request assignment dropdowns
// GET /api/v1/users/admins
func (h *Handler) ListAdmins(c *gin.Context) {
	admins, err := h.service.ListByRole(common.RoleAdmin)
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}
	c.JSON(http.StatusOK, admins)
}

// DeleteUser permanently removes an account (Dean only, enforced by route)
// DELETE /api/v1/users/:id
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.service.DeleteUser(id); err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User account deleted"})
}
