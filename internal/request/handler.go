package request

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

// POST /api/v1/requests (HOD)
func (h *Handler) Create(c *gin.Context) {
	role := common.Role(c.GetString("role"))
	if role != common.RoleHOD {
		c.JSON(http.StatusForbidden, gin.H{"error": "role " + string(role) + " cannot file requests"})
		return
	}

	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	r, err := h.service.Create(c.MustGet("user_id").(uuid.UUID), &req)
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}
	c.JSON(http.StatusCreated, r)
}

// GET /api/v1/requests?department_id=&mine=true
func (h *Handler) List(c *gin.Context) {
	var departmentID, createdByID *uuid.UUID
	if raw := c.Query("department_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid department_id"})
			return
		}
		departmentID = &id
	}
	if c.Query("mine") == "true" {
		id := c.MustGet("user_id").(uuid.UUID)
		createdByID = &id
	}

	requests, err := h.service.List(departmentID, createdByID)
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}
	c.JSON(http.StatusOK, requests)
}

// PATCH /api/v1/requests/:id (Dean approves/declines, Admin advances)
func (h *Handler) Advance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var req AdvanceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	r, err := h.service.Advance(id,
		common.Role(c.GetString("role")),
		c.MustGet("user_id").(uuid.UUID), &req)
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}
	c.JSON(http.StatusOK, r)
}
