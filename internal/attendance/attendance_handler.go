package attendance

import (
	"net/http"

	"go-madrasa/internal/domain"
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

func (h *Handler) RecordLinkSent(c *gin.Context) {
	schoolID := c.GetString("school_id")
	teacherID := c.GetString("user_id")

	var req RecordLinkSentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.RecordLinkSent(c.Request.Context(), schoolID, teacherID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	schoolID := c.GetString("school_id")
	actorID := c.GetString("user_id")
	role, _ := domain.ParseRole(c.GetString("role"))

	var canReadAll bool
	switch role {
	case domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleController:
		canReadAll = true
	case domain.RoleTeacher, domain.RoleRegistral:
		canReadAll = false
	}

	var filter ListEventsFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", err.Error())
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), schoolID, actorID, canReadAll, filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
