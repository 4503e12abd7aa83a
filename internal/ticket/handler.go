package ticket

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

// POST /api/v1/tickets (HOD / Lab-Incharge)
func (h *Handler) Create(c *gin.Context) {
	role := common.Role(c.GetString("role"))
	if role != common.RoleHOD && role != common.RoleLabIncharge {
		c.JSON(http.StatusForbidden, gin.H{"error": "role " + string(role) + " cannot raise tickets"})
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	t, err := h.service.Create(c.MustGet("user_id").(uuid.UUID), &req)
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}
	c.JSON(http.StatusCreated, t)
}

// GET /api/v1/tickets?department_id=&mine=true
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

	tickets, err := h.service.List(departmentID, createdByID)
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// PATCH /api/v1/tickets/:id (Admin/Dean)
func (h *Handler) Advance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}

	var req AdvanceTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	t, err := h.service.Advance(id,
		common.Role(c.GetString("role")),
		c.MustGet("user_id").(uuid.UUID), &req)
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}
	c.JSON(http.StatusOK, t)
}
