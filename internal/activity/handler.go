package activity

import (
	"net/http"
	"strconv"

	"campusit/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// Feed returns the role-scoped activity feed, newest first
// GET /api/v1/activities?limit=50
func (h *Handler) Feed(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		limit = 50
	}

	filter := Filter{
		UserID: c.MustGet("user_id").(uuid.UUID),
		Role:   common.Role(c.GetString("role")),
	}
	if raw, ok := c.Get("department_id"); ok {
		if id, ok := raw.(uuid.UUID); ok {
			filter.DepartmentID = &id
		}
	}
	if raw, ok := c.Get("lab_id"); ok {
		if id, ok := raw.(uuid.UUID); ok {
			filter.LabID = &id
		}
	}

	var entries []ActivityLog
	if err := filter.Scope(h.db.Model(&ActivityLog{})).
		Order("created_at desc").
		Limit(limit).
		Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load activity feed"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
