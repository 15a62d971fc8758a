package billing

import (
	"net/http"

	"go-madrasa/internal/shared/apperror"
	"go-madrasa/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) CreateSubscription(c *gin.Context) {
	schoolID := c.GetString("school_id")

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.CreateSubscription(c.Request.Context(), schoolID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetSubscriptions(c *gin.Context) {
	schoolID := c.GetString("school_id")

	resp, err := h.service.GetSubscriptions(c.Request.Context(), schoolID, c.Query("student_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) PreviewProration(c *gin.Context) {
	schoolID := c.GetString("school_id")

	var req ProrationPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.PreviewProration(c.Request.Context(), schoolID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpgradeSubscription(c *gin.Context) {
	schoolID := c.GetString("school_id")
	adminID := c.GetString("user_id")

	var req UpgradeSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.UpgradeSubscription(c.Request.Context(), schoolID, adminID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetInvoices(c *gin.Context) {
	schoolID := c.GetString("school_id")

	resp, err := h.service.GetInvoices(c.Request.Context(), schoolID, c.Query("student_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
