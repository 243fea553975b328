package handler

import (
	"errors"
	"net/http"

	"freelance-marketplace-backend/internal/middleware"
	"freelance-marketplace-backend/internal/services/proposals"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ProposalHandler struct {
	service *proposals.Service
}

func NewProposalHandler(service *proposals.Service) *ProposalHandler {
	return &ProposalHandler{service: service}
}

func proposalErrorStatus(err error) int {
	switch {
	case errors.Is(err, proposals.ErrProposalNotFound),
		errors.Is(err, proposals.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, proposals.ErrNotProjectClient):
		return http.StatusForbidden
	case errors.Is(err, proposals.ErrProjectNotOpen):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *ProposalHandler) Create(c *gin.Context) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	var payload struct {
		ProjectID      string          `json:"project_id"`
		ProposedBudget decimal.Decimal `json:"proposed_budget"`
		DeliveryTime   int             `json:"delivery_time"`
		ProposalText   string          `json:"proposal_text"`
		CoverLetter    string          `json:"cover_letter"`
		PortfolioLinks datatypes.JSON  `json:"portfolio_links"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}
	projectID, err := uuid.Parse(payload.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid project ID"})
		return
	}
	if !payload.ProposedBudget.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "proposed_budget must be greater than zero"})
		return
	}

	proposal, err := h.service.Create(uid, proposals.CreateInput{
		ProjectID:      projectID,
		ProposedBudget: payload.ProposedBudget,
		DeliveryTime:   payload.DeliveryTime,
		ProposalText:   payload.ProposalText,
		CoverLetter:    payload.CoverLetter,
		PortfolioLinks: payload.PortfolioLinks,
	})
	if err != nil {
		writeError(c, proposalErrorStatus(err), err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": proposal})
}

func (h *ProposalHandler) ListByProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid project ID"})
		return
	}

	list, err := h.service.ListByProject(projectID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
}

func (h *ProposalHandler) Accept(c *gin.Context) {
	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid proposal ID"})
		return
	}

	result, err := h.service.Accept(proposalID)
	if err != nil {
		writeError(c, proposalErrorStatus(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

func (h *ProposalHandler) Reject(c *gin.Context) {
	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid proposal ID"})
		return
	}
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	proposal, err := h.service.Reject(proposalID, uid)
	if err != nil {
		writeError(c, proposalErrorStatus(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": proposal})
}
