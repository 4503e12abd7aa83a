package department

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

// GET /api/v1/departments
func (h *Handler) List(c *gin.Context) {
	departments, err := h.service.List()
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}
	c.JSON(http.StatusOK, departments)
}

// POST /api/v1/departments (Dean only)
func (h *Handler) Create(c *gin.Context) {
	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	dept, err := h.service.Create(&req)
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}
	c.JSON(http.StatusCreated, dept)
}

// PATCH /api/v1/departments/:id (Dean only)
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid department id"})
		return
	}

	var req UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	dept, err := h.service.Update(id, &req)
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}
	c.JSON(http.StatusOK, dept)
}

// DELETE /api/v1/departments/:id (Dean only) - cascading decommission
func (h *Handler) Decommission(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid department id"})
		return
	}

	// Decommission failures surface verbatim; the operator running a cascade
	// needs the underlying cause, not a generic message.
	if err := h.service.Decommission(id); err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Department decommissioned successfully. Assets returned to allocation pool.",
	})
}
