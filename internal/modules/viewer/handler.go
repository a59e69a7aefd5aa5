package viewer

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/formcraft/internal/models"
	"github.com/mx-space/formcraft/internal/modules/form"
	"github.com/mx-space/formcraft/internal/modules/notify"
	"github.com/mx-space/formcraft/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	store    form.Store
	notifier notify.Notifier
	logger   *zap.Logger
}

func NewHandler(store form.Store, notifier notify.Notifier, logger *zap.Logger) *Handler {
	return &Handler{store: store, notifier: notifier, logger: logger.Named("viewer")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	v := rg.Group("/view/:id")
	v.GET("", h.view)
	v.POST("/submit", h.submit)
}

type SubmitDTO struct {
	Data map[string]any `json:"data"`
}

type submitResult struct {
	Submitted bool   `json:"submitted"`
	Message   string `json:"message"`
}

func (h *Handler) load(c *gin.Context) (*Session, bool) {
	s := NewSession(h.store, h.notifier, h.logger)
	if err := s.Load(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFoundRedirect(c, models.ErrNotFound.Error())
		} else {
			response.InternalError(c, err)
		}
		return nil, false
	}
	return s, true
}

func (h *Handler) view(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	response.OK(c, s.Form())
}

func (h *Handler) submit(c *gin.Context) {
	var dto SubmitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	s, ok := h.load(c)
	if !ok {
		return
	}
	if err := s.Submit(c.Request.Context(), dto.Data); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, submitResult{Submitted: s.Submitted(), Message: SubmittedMessage})
}
