package stats

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

// Dashboard returns role-scoped dashboard statistics
// GET /api/v1/stats
func (h *Handler) Dashboard(c *gin.Context) {
	var departmentID, labID *uuid.UUID
	if raw, ok := c.Get("department_id"); ok {
		if id, ok := raw.(uuid.UUID); ok {
			departmentID = &id
		}
	}
	if raw, ok := c.Get("lab_id"); ok {
		if id, ok := raw.(uuid.UUID); ok {
			labID = &id
		}
	}

	out, err := h.service.Dashboard(c.Request.Context(),
		common.Role(c.GetString("role")),
		c.MustGet("user_id").(uuid.UUID),
		departmentID, labID)
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}

	c.JSON(http.StatusOK, out)
}
