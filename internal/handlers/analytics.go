// internal/handlers/analytics.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/easyfix/electrox-backend/internal/services"
	"github.com/easyfix/electrox-backend/internal/utils"
)

// AnalyticsHandler records storefront visits and serves the traffic
// view of the admin dashboard.
type AnalyticsHandler struct {
	visitService *services.VisitService
}

func NewAnalyticsHandler(visitService *services.VisitService) *AnalyticsHandler {
	return &AnalyticsHandler{
		visitService: visitService,
	}
}

// POST /visits — tracked by the storefront on navigation. Works for
// anonymous visitors; a valid bearer token attributes the visit to the
// account instead.
func (h *AnalyticsHandler) TrackVisit(c *gin.Context) {
	var req services.TrackVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	var userID *uuid.UUID
	if userIDStr, exists := utils.GetUserIDFromContext(c); exists {
		if id, err := uuid.Parse(userIDStr); err == nil {
			userID = &id
		}
	}

	visit, err := h.visitService.TrackVisit(userID, &req, c.Request.UserAgent())
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"visit": visit})
}

// GET /admin/visits
func (h *AnalyticsHandler) GetVisits(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	visits, total, err := h.visitService.ListVisits(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(visits, total, params)
	utils.PaginatedResponse(c, result)
}

// DELETE /admin/visits/:id
func (h *AnalyticsHandler) DeleteVisit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid visit ID", nil)
		return
	}

	if err := h.visitService.DeleteVisit(id); err != nil {
		utils.NotFoundResponse(c, "visit")
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}
