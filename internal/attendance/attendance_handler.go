package attendance

import (
	"net/http"
	"strconv"
	"time"

	attendanceerrors "github.com/rohinisinghsenger-max/hrms-portal/internal/attendance/errors"
	"github.com/rohinisinghsenger-max/hrms-portal/internal/shared/apperror"
	"github.com/rohinisinghsenger-max/hrms-portal/internal/shared/contextutil"
	"github.com/rohinisinghsenger-max/hrms-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	contextutil.GetLogger(c.Request.Context(), h.logger).Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Mark(c *gin.Context) {
	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http mark attendance validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Mark(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) GetAll(c *gin.Context) {
	var filter ListFilter

	dateFrom, err := parseDateQuery(c, "date_from")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	filter.DateFrom = dateFrom

	dateTo, err := parseDateQuery(c, "date_to")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	filter.DateTo = dateTo

	if raw := c.Query("employee_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.writeServiceError(c, attendanceerrors.ErrInvalidEmployeeID)
			return
		}
		employeeID := uint(id)
		filter.EmployeeID = &employeeID
	}
	filter.Status = c.Query("status")

	resp, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) GetAllByEmployee(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.writeServiceError(c, attendanceerrors.ErrInvalidEmployeeID)
		return
	}

	var dateRange DateRange
	dateFrom, err := parseDateQuery(c, "date_from")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	dateRange.DateFrom = dateFrom

	dateTo, err := parseDateQuery(c, "date_to")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	dateRange.DateTo = dateTo

	resp, err := h.service.GetAllByEmployee(c.Request.Context(), uint(id), dateRange)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.writeServiceError(c, attendanceerrors.ErrInvalidAttendanceID)
		return
	}

	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update attendance validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), uint(id), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.writeServiceError(c, attendanceerrors.ErrInvalidAttendanceID)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uint(id)); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseDateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDate
	}
	return &d, nil
}
