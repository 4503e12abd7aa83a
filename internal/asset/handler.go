package asset

import (
	"io"
	"net/http"
	"strconv"

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

// GET /api/v1/assets?search=&department_id=&lab_id=&status=&limit=&offset=
func (h *Handler) List(c *gin.Context) {
	filter := ListFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
	if raw := c.Query("department_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid department_id"})
			return
		}
		filter.DepartmentID = &id
	}
	if raw := c.Query("lab_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lab_id"})
			return
		}
		filter.LabID = &id
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	assets, total, err := h.service.List(filter)
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": assets, "total": total})
}

// POST /api/v1/assets (Admin/Dean)
func (h *Handler) Create(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	a, err := h.service.Create(c.MustGet("user_id").(uuid.UUID), &req)
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}
	c.JSON(http.StatusCreated, a)
}

// PATCH /api/v1/assets/:id/lab (Admin/Dean)
func (h *Handler) ReassignLab(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset id"})
		return
	}

	var body struct {
		LabID *string `json:"lab_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	var labID *uuid.UUID
	if body.LabID != nil && *body.LabID != "" {
		parsed, err := uuid.Parse(*body.LabID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lab_id"})
			return
		}
		labID = &parsed
	}

	a, err := h.service.ReassignLab(id, labID)
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}
	c.JSON(http.StatusOK, a)
}

// DELETE /api/v1/assets/:id (Dean only)
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset id"})
		return
	}

	if err := h.service.Delete(id); err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted"})
}

// ImportCSV ingests a CSV file upload and returns the batch summary
// POST /api/v1/assets/import?default_department_id= (Admin/Dean)
func (h *Handler) ImportCSV(c *gin.Context) {
	var defaultDepartmentID uuid.UUID
	if raw := c.Query("default_department_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid default_department_id"})
			return
		}
		defaultDepartmentID = id
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not found"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to open file"})
		return
	}
	defer src.Close()

	payload, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to read file"})
		return
	}

	summary, err := h.service.ImportCSV(c.Request.Context(),
		c.MustGet("user_id").(uuid.UUID), defaultDepartmentID, string(payload))
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
		return
	}
	c.JSON(http.StatusOK, summary)
}
