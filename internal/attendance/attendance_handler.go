package attendance

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/apperror"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/request"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) ClockIn(c *gin.Context) {
	actor, err := request.Actor(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	var req ClockInRequest
	if err := request.BindOptionalJSON(c, &req); err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.ClockIn(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ClockOut(c *gin.Context) {
	actor, err := request.Actor(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	var req ClockOutRequest
	if err := request.BindOptionalJSON(c, &req); err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.ClockOut(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	actor, err := request.Actor(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	var q ListAttendanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	q.Page, q.PageSize = response.NormalizePage(q.Page, q.PageSize)

	resp, total, err := h.service.GetAll(c.Request.Context(), actor, q)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, q.Page, q.PageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) Export(c *gin.Context) {
	actor, err := request.Actor(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	var q ExportAttendanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	file, err := h.service.Export(c.Request.Context(), actor, q)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
