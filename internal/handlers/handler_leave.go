package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/barengs/smpt-sub000/internal/core/ports/services"
	"github.com/barengs/smpt-sub000/internal/dto"
	"github.com/barengs/smpt-sub000/internal/middleware"
)

// leaveHandler handles HTTP requests for the student leave workflow.
type leaveHandler struct {
	leaveService portssvc.LeaveSvcFacade
}

// newLeaveHandler creates a new leaveHandler.
func newLeaveHandler(ls portssvc.LeaveSvcFacade) *leaveHandler {
	return &leaveHandler{leaveService: ls}
}

// registerLeaveRoutes registers routes related to student leaves.
func registerLeaveRoutes(rg *gin.RouterGroup, leaveService portssvc.LeaveSvcFacade) {
	h := newLeaveHandler(leaveService)

	leaves := rg.Group("/leaves")
	{
		leaves.POST("", middleware.RequireActor(), h.createLeave)
		leaves.GET("/:leaveID", h.getLeave)
		leaves.GET("/:leaveID/approvals", h.getApprovalTimeline)
		leaves.GET("/:leaveID/activities", h.getActivityHistory)
		leaves.GET("/:leaveID/penalties", h.getPenalties)
		leaves.POST("/:leaveID/approve", middleware.RequireActor(), h.approveLeave)
		leaves.POST("/:leaveID/reject", middleware.RequireActor(), h.rejectLeave)
		leaves.POST("/:leaveID/report", middleware.RequireActor(), h.submitReport)
		leaves.POST("/:leaveID/report/verify", middleware.RequireActor(), h.verifyReport)
		leaves.POST("/:leaveID/penalties", middleware.RequireActor(), h.assignPenalty)
		leaves.POST("/:leaveID/cancel", middleware.RequireActor(), h.cancelLeave)
	}

	// Batch transitions, intended to be hit by a scheduler.
	batch := rg.Group("/leaves-batch")
	{
		batch.POST("/activate", h.activateStartedLeaves)
		batch.POST("/sweep-overdue", h.sweepOverdue)
	}
}

// createLeave godoc
// @Summary Create a leave request
// @Description Registers a new leave in status pending with one approval row per approver role
// @Tags leaves
// @Accept  json
// @Produce  json
// @Param   leave body dto.CreateLeaveRequest true "Leave details"
// @Param   X-Actor-ID header string true "Acting user id"
// @Success 201 {object} dto.LeaveResponse
// @Failure 400 {object} map[string]string "Invalid request format or date range"
// @Failure 404 {object} map[string]string "Academic year not found"
// @Router /leaves [post]
func (h *leaveHandler) createLeave(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateLeave", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorFromContext(c)
	leave, err := h.leaveService.CreateLeave(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithServiceError(c, logger, err, "create leave")
		return
	}

	c.JSON(http.StatusCreated, dto.ToLeaveResponse(leave))
}

// getLeave godoc
// @Summary Get a leave request
// @Description Retrieves a leave with its current status and approval progress
// @Tags leaves
// @Produce  json
// @Param   leaveID path string true "Leave ID"
// @Success 200 {object} dto.LeaveResponse
// @Failure 404 {object} map[string]string "Leave not found"
// @Router /leaves/{leaveID} [get]
func (h *leaveHandler) getLeave(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	leaveID := c.Param("leaveID")

	leave, err := h.leaveService.GetLeave(c.Request.Context(), leaveID)
	if err != nil {
		respondWithServiceError(c, logger, err, "get leave")
		return
	}

	c.JSON(http.StatusOK, dto.ToLeaveResponse(leave))
}

// getApprovalTimeline godoc
// @Summary Get a leave's approval timeline
// @Description Retrieves the per-role approval rows, pending roles included
// @Tags leaves
// @Produce  json
// @Param   leaveID path string true "Leave ID"
// @Success 200 {array} dto.ApprovalResponse
// @Failure 404 {object} map[string]string "Leave not found"
// @Router /leaves/{leaveID}/approvals [get]
func (h *leaveHandler) getApprovalTimeline(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	leaveID := c.Param("leaveID")

	approvals, err := h.leaveService.GetApprovalTimeline(c.Request.Context(), leaveID)
	if err != nil {
		respondWithServiceError(c, logger, err, "get approval timeline")
		return
	}

	c.JSON(http.StatusOK, dto.ToApprovalResponses(approvals))
}

// getActivityHistory godoc
// @Summary Get a leave's activity history
// @Description Retrieves the append-only activity stream, ordered by timestamp then sequence
// @Tags leaves
// @Produce  json
// @Param   leaveID path string true "Leave ID"
// @Success 200 {array} dto.ActivityResponse
// @Failure 404 {object} map[string]string "Leave not found"
// @Router /leaves/{leaveID}/activities [get]
func (h *leaveHandler) getActivityHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	leaveID := c.Param("leaveID")

	activities, err := h.leaveService.GetActivityHistory(c.Request.Context(), leaveID)
	if err != nil {
		respondWithServiceError(c, logger, err, "get activity history")
		return
	}

	c.JSON(http.StatusOK, dto.ToActivityResponses(activities))
}

// getPenalties godoc
// @Summary List a leave's penalties
// @Description Retrieves all penalties recorded against a leave, automatic and manual alike
// @Tags leaves
// @Produce  json
// @Param   leaveID path string true "Leave ID"
// @Success 200 {array} dto.PenaltyResponse
// @Failure 404 {object} map[string]string "Leave not found"
// @Router /leaves/{leaveID}/penalties [get]
func (h *leaveHandler) getPenalties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	leaveID := c.Param("leaveID")

	penalties, err := h.leaveService.GetPenalties(c.Request.Context(), leaveID)
	if err != nil {
		respondWithServiceError(c, logger, err, "list penalties")
		return
	}

	c.JSON(http.StatusOK, dto.ToPenaltyResponses(penalties))
}

// approveLeave godoc
// @Summary Record one role's approval
// @Description Records an approval for the given role; the third distinct role's approval transitions the leave to approved
// @Tags leaves
// @Accept  json
// @Produce  json
// @Param   leaveID path string true "Leave ID"
// @Param   approval body dto.ApproveLeaveRequest true "Role and optional notes"
// @Param   X-Actor-ID header string true "Acting staff id"
// @Success 200 {object} dto.LeaveResponse
// @Failure 400 {object} map[string]string "Invalid request format or unknown role"
// @Failure 403 {object} map[string]string "Actor does not hold the role"
// @Failure 404 {object} map[string]string "Leave or staff not found"
// @Failure 409 {object} map[string]string "Leave not pending or role already decided"
// @Router /leaves/{leaveID}/approve [post]
func (h *leaveHandler) approveLeave(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	leaveID := c.Param("leaveID")

	var req dto.ApproveLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApproveLeave", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorFromContext(c)
	leave, err := h.leaveService.ApproveByRole(c.Request.Context(), leaveID, req.Role, actorID, req.Notes)
	if err != nil {
		respondWithServiceError(c, logger, err, "approve leave")
		return
	}

	c.JSON(http.StatusOK, dto.ToLeaveResponse(leave))
}

// rejectLeave godoc
// @Summary Record one role's rejection
// @Description Records a rejection for the given role; a single veto transitions the leave to rejected
// @Tags leaves
// @Accept  json
// @Produce  json
// @Param   leaveID path string true "Leave ID"
// @Param   rejection body dto.RejectLeaveRequest true "Role and mandatory notes"
// @Param   X-Actor-ID header string true "Acting staff id"
// @Success 200 {object} dto.LeaveResponse
// @Failure 400 {object} map[string]string "Invalid request format, unknown role, or missing notes"
// @Failure 403 {object} map[string]string "Actor does not hold the role"
// @Failure 404 {object} map[string]string "Leave or staff not found"
// @Failure 409 {object} map[string]string "Leave not pending or role already decided"
// @Router /leaves/{leaveID}/reject [post]
func (h *leaveHandler) rejectLeave(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	leaveID := c.Param("leaveID")

	var req dto.RejectLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RejectLeave", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorFromContext(c)
	leave, err := h.leaveService.RejectByRole(c.Request.Context(), leaveID, req.Role, actorID, req.Notes)
	if err != nil {
		respondWithServiceError(c, logger, err, "reject leave")
		return
	}

	c.JSON(http.StatusOK, dto.ToLeaveResponse(leave))
}

// submitReport godoc
// @Summary Submit a return report
// @Description Records the student's return; lateness is derived from the expected return date and a late return auto-assigns a warning penalty
// @Tags leaves
// @Accept  json
// @Produce  json
// @Param   leaveID path string true "Leave ID"
// @Param   report body dto.SubmitReportRequest true "Report details"
// @Param   X-Actor-ID header string true "Acting user id"
// @Success 201 {object} dto.ReportResponse
// @Failure 400 {object} map[string]string "Invalid request format or report date"
// @Failure 404 {object} map[string]string "Leave not found"
// @Failure 409 {object} map[string]string "Leave not reportable or report already exists"
// @Router /leaves/{leaveID}/report [post]
func (h *leaveHandler) submitReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	leaveID := c.Param("leaveID")

	var req dto.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorFromContext(c)
	report, err := h.leaveService.SubmitReport(c.Request.Context(), leaveID, req, actorID)
	if err != nil {
		respondWithServiceError(c, logger, err, "submit report")
		return
	}

	c.JSON(http.StatusCreated, dto.ToReportResponse(report))
}

// verifyReport godoc
// @Summary Verify a return report
// @Description Marks the return report verified by a staff member
// @Tags leaves
// @Accept  json
// @Produce  json
// @Param   leaveID path string true "Leave ID"
// @Param   verification body dto.VerifyReportRequest true "Optional verification notes"
// @Param   X-Actor-ID header string true "Acting staff id"
// @Success 200 {object} dto.ReportResponse
// @Failure 404 {object} map[string]string "Leave or report not found"
// @Failure 409 {object} map[string]string "Report already verified"
// @Router /leaves/{leaveID}/report/verify [post]
func (h *leaveHandler) verifyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	leaveID := c.Param("leaveID")

	var req dto.VerifyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for VerifyReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorFromContext(c)
	report, err := h.leaveService.VerifyReport(c.Request.Context(), leaveID, actorID, req.Notes)
	if err != nil {
		respondWithServiceError(c, logger, err, "verify report")
		return
	}

	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}

// assignPenalty godoc
// @Summary Assign a penalty
// @Description Records a manually assigned disciplinary penalty against a leave
// @Tags leaves
// @Accept  json
// @Produce  json
// @Param   leaveID path string true "Leave ID"
// @Param   penalty body dto.AssignPenaltyRequest true "Penalty details"
// @Param   X-Actor-ID header string true "Acting staff id"
// @Success 201 {object} dto.PenaltyResponse
// @Failure 400 {object} map[string]string "Invalid request format or penalty type"
// @Failure 404 {object} map[string]string "Leave not found"
// @Router /leaves/{leaveID}/penalties [post]
func (h *leaveHandler) assignPenalty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	leaveID := c.Param("leaveID")

	var req dto.AssignPenaltyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AssignPenalty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorFromContext(c)
	penalty, err := h.leaveService.AssignPenalty(c.Request.Context(), leaveID, req, actorID)
	if err != nil {
		respondWithServiceError(c, logger, err, "assign penalty")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPenaltyResponse(penalty))
}

// cancelLeave godoc
// @Summary Cancel a leave request
// @Description Transitions a pending or approved leave to cancelled; the record is kept
// @Tags leaves
// @Produce  json
// @Param   leaveID path string true "Leave ID"
// @Param   X-Actor-ID header string true "Acting user id"
// @Success 204 "Cancelled"
// @Failure 404 {object} map[string]string "Leave not found"
// @Failure 409 {object} map[string]string "Leave already started or finished"
// @Router /leaves/{leaveID}/cancel [post]
func (h *leaveHandler) cancelLeave(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	leaveID := c.Param("leaveID")

	actorID, _ := middleware.GetActorFromContext(c)
	if err := h.leaveService.Cancel(c.Request.Context(), leaveID, actorID); err != nil {
		respondWithServiceError(c, logger, err, "cancel leave")
		return
	}

	c.Status(http.StatusNoContent)
}

// activateStartedLeaves godoc
// @Summary Activate started leaves
// @Description Transitions approved leaves whose start date has arrived to active; idempotent
// @Tags leaves
// @Produce  json
// @Success 200 {object} dto.BatchResultResponse
// @Router /leaves-batch/activate [post]
func (h *leaveHandler) activateStartedLeaves(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	updated, err := h.leaveService.ActivateStartedLeaves(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, logger, err, "activate started leaves")
		return
	}

	c.JSON(http.StatusOK, dto.BatchResultResponse{Updated: updated})
}

// sweepOverdue godoc
// @Summary Sweep overdue leaves
// @Description Transitions active leaves past their expected return date, with no report, to overdue; idempotent
// @Tags leaves
// @Produce  json
// @Success 200 {object} dto.BatchResultResponse
// @Router /leaves-batch/sweep-overdue [post]
func (h *leaveHandler) sweepOverdue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	updated, err := h.leaveService.SweepOverdue(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, logger, err, "sweep overdue leaves")
		return
	}

	c.JSON(http.StatusOK, dto.BatchResultResponse{Updated: updated})
}
