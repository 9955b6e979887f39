package approval

import (
	"net/http"

	"out-of-office/internal/shared/apperror"
	"out-of-office/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	decider Decider
	logger  *zap.Logger
}

func NewHandler(service Service, decider Decider, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("approval.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.handler")
	}
	return &Handler{service: service, decider: decider, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("approval request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Fail(c, httpErr)
}

func (h *Handler) Create(c *gin.Context) {
	h.logger.Debug("http create approval", zap.String("caller_id", c.GetString("employee_id")))
	var req CreateApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	var q ListApprovalsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), Filter{
		Status:         q.Status,
		ApproverID:     q.ApproverID,
		LeaveRequestID: q.LeaveRequestID,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, response.ListMeta(len(resp)))
}

// GetPending lists NEW approvals of ?approver_id, defaulting to the caller.
func (h *Handler) GetPending(c *gin.Context) {
	approverID := c.DefaultQuery("approver_id", c.GetString("employee_id"))
	h.logger.Debug("http get pending approvals", zap.String("approver_id", approverID))

	resp, err := h.service.GetPendingForApprover(c.Request.Context(), approverID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http approve approval", zap.String("approval_id", id))

	resp, err := h.decider.ApproveRequest(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http reject approval", zap.String("approval_id", id))

	var req RejectApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.decider.RejectRequest(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
