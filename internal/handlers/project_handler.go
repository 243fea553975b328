package handler

import (
	"errors"
	"net/http"
	"time"

	"freelance-marketplace-backend/internal/middleware"
	"freelance-marketplace-backend/internal/models"
	"freelance-marketplace-backend/internal/repository"
	"freelance-marketplace-backend/internal/services/calendar"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projects *repository.ProjectRepository
	calendar *calendar.Service
}

func NewProjectHandler(projects *repository.ProjectRepository, calendarSvc *calendar.Service) *ProjectHandler {
	return &ProjectHandler{projects: projects, calendar: calendarSvc}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	var payload struct {
		Title       string          `json:"title"`
		Description string          `json:"description"`
		Budget      decimal.Decimal `json:"budget"`
		Deadline    *time.Time      `json:"deadline"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}
	if payload.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "title is required"})
		return
	}

	project := &models.Project{
		ID:          uuid.New(),
		ClientID:    uid,
		Title:       payload.Title,
		Description: payload.Description,
		Budget:      payload.Budget,
		Status:      models.ProjectStatusOpen,
		Deadline:    payload.Deadline,
		CreatedAt:   time.Now(),
	}
	if err := h.projects.Create(project); err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": project})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid project ID"})
		return
	}

	project, err := h.projects.GetByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "project not found"})
			return
		}
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": project})
}

func (h *ProjectHandler) ListEvents(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid project ID"})
		return
	}

	events, err := h.calendar.ListProjectEvents(projectID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": events})
}
