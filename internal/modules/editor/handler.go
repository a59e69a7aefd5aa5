package editor

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/formcraft/internal/middleware"
	"github.com/mx-space/formcraft/internal/models"
	"github.com/mx-space/formcraft/internal/pkg/response"
)

type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	ed := rg.Group("/editor/:id", authMW)
	ed.GET("", h.open)
	ed.PATCH("", h.updateForm)
	ed.POST("/fields", h.addField)
	ed.POST("/select", h.selectField)
	ed.PATCH("/selected", h.updateField)
	ed.DELETE("/selected", h.deleteField)
	ed.POST("/selected/options", h.addOption)
	ed.PATCH("/selected/options/:index", h.updateOption)
	ed.DELETE("/selected/options/:index", h.removeOption)
}

// open (re)loads the form, which also clears the selection.
func (h *Handler) open(c *gin.Context) {
	s := h.session(c)
	if err := s.Load(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, s)
}

func (h *Handler) updateForm(c *gin.Context) {
	var dto FormPropertyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.mutate(c, func(ctx context.Context, s *Session) error {
		return s.UpdateFormProperty(ctx, dto.Key, dto.Value)
	})
}

func (h *Handler) addField(c *gin.Context) {
	var dto AddFieldDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.mutate(c, func(ctx context.Context, s *Session) error {
		return s.AddField(ctx, models.FieldType(dto.Type))
	})
}

func (h *Handler) selectField(c *gin.Context) {
	var dto SelectFieldDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.mutate(c, func(_ context.Context, s *Session) error {
		s.SelectField(dto.ID)
		return nil
	})
}

func (h *Handler) updateField(c *gin.Context) {
	var dto FieldPropertyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.mutate(c, func(ctx context.Context, s *Session) error {
		return s.UpdateFieldProperty(ctx, dto.Key, dto.Value)
	})
}

func (h *Handler) deleteField(c *gin.Context) {
	h.mutate(c, func(ctx context.Context, s *Session) error {
		return s.DeleteSelectedField(ctx)
	})
}

func (h *Handler) addOption(c *gin.Context) {
	h.mutate(c, func(ctx context.Context, s *Session) error {
		return s.AddOption(ctx)
	})
}

func (h *Handler) updateOption(c *gin.Context) {
	index, ok := optionIndex(c)
	if !ok {
		return
	}
	var dto OptionPropertyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.mutate(c, func(ctx context.Context, s *Session) error {
		return s.UpdateOptionProperty(ctx, index, dto.Key, dto.Value)
	})
}

func (h *Handler) removeOption(c *gin.Context) {
	index, ok := optionIndex(c)
	if !ok {
		return
	}
	h.mutate(c, func(ctx context.Context, s *Session) error {
		return s.RemoveOption(ctx, index)
	})
}

func (h *Handler) session(c *gin.Context) *Session {
	return h.registry.Session(middleware.CurrentSessionID(c), c.Param("id"))
}

// mutate loads the form on first use, applies op and answers with the
// resulting snapshot.
func (h *Handler) mutate(c *gin.Context, op func(context.Context, *Session) error) {
	ctx := c.Request.Context()
	s := h.session(c)
	if s.Loaded() {
		if err := s.Verify(ctx); err != nil {
			h.fail(c, err)
			return
		}
	} else if err := s.Load(ctx, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	if err := op(ctx, s); err != nil {
		writeError(c, err)
		return
	}
	h.respond(c, s)
}

// fail answers a load error. Editors for missing forms are dropped from the
// registry.
func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, models.ErrNotFound) {
		h.registry.Discard(middleware.CurrentSessionID(c), c.Param("id"))
	}
	writeError(c, err)
}

func (h *Handler) respond(c *gin.Context, s *Session) {
	snap, err := s.Snapshot()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, snap)
}

func optionIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "option index must be an integer")
		return 0, false
	}
	return index, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		response.NotFoundRedirect(c, models.ErrNotFound.Error())
	case errors.Is(err, models.ErrInvalidFieldType),
		errors.Is(err, models.ErrUnknownProperty),
		errors.Is(err, models.ErrImmutableProperty),
		errors.Is(err, models.ErrInvalidPropertyValue):
		response.UnprocessableEntity(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
