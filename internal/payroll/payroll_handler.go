package payroll

import (
	"net/http"
	"time"

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

// parseRange resolves the requested window, defaulting to month-start..today.
func parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return time.Time{}, time.Time{}, apperror.InvalidField("start_date")
		}
		from = parsed
	}
	if endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return time.Time{}, time.Time{}, apperror.InvalidField("end_date")
		}
		to = parsed
	}
	return from, to, nil
}

func (h *Handler) GetSalaries(c *gin.Context) {
	schoolID := c.GetString("school_id")

	var req SalaryQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	from, to, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if req.TeacherID == "" {
		results, err := h.service.CalculateAll(c.Request.Context(), schoolID, from, to)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, results, nil)
		return
	}

	result, err := h.service.GetTeacherSalary(c.Request.Context(), schoolID, req.TeacherID, from, to, req.Details)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, nil)
}

// GetOwnSalary serves the teacher dashboard; it always scopes to the caller.
func (h *Handler) GetOwnSalary(c *gin.Context) {
	schoolID := c.GetString("school_id")
	teacherID := c.GetString("user_id")

	from, to, err := parseRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	result, err := h.service.GetTeacherSalary(c.Request.Context(), schoolID, teacherID, from, to, true)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) UpsertPayment(c *gin.Context) {
	schoolID := c.GetString("school_id")
	adminID := c.GetString("user_id")

	var req UpsertPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.UpsertPayment(c.Request.Context(), schoolID, adminID, req)
	if err != nil {
		// The row may have committed even when the gateway declined; return
		// the persisted state alongside the error details.
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, resp)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetPayments(c *gin.Context) {
	schoolID := c.GetString("school_id")

	resp, err := h.service.GetPayments(c.Request.Context(), schoolID, c.Query("period"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateBonus(c *gin.Context) {
	schoolID := c.GetString("school_id")
	adminID := c.GetString("user_id")

	var req CreateBonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.CreateBonus(c.Request.Context(), schoolID, adminID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetBonuses(c *gin.Context) {
	schoolID := c.GetString("school_id")

	resp, err := h.service.GetBonuses(c.Request.Context(), schoolID, c.Query("teacher_id"), c.Query("period"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
