package notification

import (
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

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) ListMine(c *gin.Context) {
	actor, err := request.Actor(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var q ListNotificationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}
	q.Page, q.PageSize = response.NormalizePage(q.Page, q.PageSize)

	resp, total, err := h.service.ListMine(c.Request.Context(), actor, q)
	if err != nil {
		writeError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, q.Page, q.PageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) UnreadCount(c *gin.Context) {
	actor, err := request.Actor(c)
	if err != nil {
		writeError(c, err)
		return
	}

	resp, err := h.service.UnreadCount(c.Request.Context(), actor)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkRead(c *gin.Context) {
	actor, err := request.Actor(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	actor, err := request.Actor(c)
	if err != nil {
		writeError(c, err)
		return
	}

	updated, err := h.service.MarkAllRead(c.Request.Context(), actor)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": updated}, nil)
}
