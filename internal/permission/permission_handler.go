package permission

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

func (h *Handler) Submit(c *gin.Context) {
	schoolID := c.GetString("school_id")
	teacherID := c.GetString("user_id")

	var req SubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), schoolID, teacherID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Review(c *gin.Context) {
	schoolID := c.GetString("school_id")
	reviewerID := c.GetString("user_id")
	id := c.Param("id")

	var req ReviewRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Review(c.Request.Context(), schoolID, reviewerID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
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

	resp, err := h.service.GetAll(c.Request.Context(), schoolID, actorID, canReadAll)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateWaiver(c *gin.Context) {
	schoolID := c.GetString("school_id")
	adminID := c.GetString("user_id")

	var req CreateWaiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.CreateWaiver(c.Request.Context(), schoolID, adminID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetWaivers(c *gin.Context) {
	schoolID := c.GetString("school_id")

	resp, err := h.service.GetWaivers(c.Request.Context(), schoolID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
