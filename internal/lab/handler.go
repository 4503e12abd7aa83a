package lab

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

// GET /api/v1/labs?department_id=
func (h *Handler) List(c *gin.Context) {
	var departmentID *uuid.UUID
	if raw := c.Query("department_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid department_id"})
			return
		}
		departmentID = &id
	}

	labs, err := h.service.List(departmentID)
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}
	c.JSON(http.StatusOK, labs)
}

// POST /api/v1/labs (Dean/Admin)
func (h *Handler) Create(c *gin.Context) {
	var req CreateLabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	l, err := h.service.Create(&req)
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}
	c.JSON(http.StatusCreated, l)
}
