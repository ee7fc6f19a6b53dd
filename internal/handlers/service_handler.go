package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/konsultaklinik/clinic-scheduler/internal/httperr"
	"github.com/konsultaklinik/clinic-scheduler/internal/httpresp"
	"github.com/konsultaklinik/clinic-scheduler/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"durationMinutes"`
	Active          *bool  `json:"active"`
}

type UpdateServiceRequest struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Active          *bool   `json:"active,omitempty"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.Order("name ASC")
	if c.Query("active") == "true" {
		q = q.Where("active = ?", true)
	}

	var services []models.Service
	if err := q.Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	httpresp.OK(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	var service models.Service
	if err := h.db.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Failed to get service.")
		return
	}

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = 30
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	service := models.Service{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: duration,
		Active:          active,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Failed to create service.")
		return
	}

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var service models.Service
	if err := h.db.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Failed to get service.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			httperr.BadRequest(c, "invalid_duration", "durationMinutes must be positive.")
			return
		}
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Failed to update service.")
		return
	}

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	var service models.Service
	if err := h.db.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Failed to get service.")
		return
	}

	if err := h.db.Delete(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Failed to delete service.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
