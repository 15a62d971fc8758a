package rates

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

func (h *Handler) UpsertPackageDeduction(c *gin.Context) {
	schoolID := c.GetString("school_id")

	var req UpsertPackageDeductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.UpsertPackageDeduction(c.Request.Context(), schoolID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetPackageDeductions(c *gin.Context) {
	schoolID := c.GetString("school_id")

	resp, err := h.service.GetPackageDeductions(c.Request.Context(), schoolID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpsertPackageSalary(c *gin.Context) {
	schoolID := c.GetString("school_id")

	var req UpsertPackageSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.UpsertPackageSalary(c.Request.Context(), schoolID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetPackageSalaries(c *gin.Context) {
	schoolID := c.GetString("school_id")

	resp, err := h.service.GetPackageSalaries(c.Request.Context(), schoolID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ReplaceLatenessConfig(c *gin.Context) {
	schoolID := c.GetString("school_id")

	var req ReplaceTiersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.ReplaceLatenessConfig(c.Request.Context(), schoolID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetLatenessConfig(c *gin.Context) {
	schoolID := c.GetString("school_id")

	resp, err := h.service.GetLatenessConfig(c.Request.Context(), schoolID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
