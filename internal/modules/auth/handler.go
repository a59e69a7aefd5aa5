package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/formcraft/internal/middleware"
	"github.com/mx-space/formcraft/internal/modules/notify"
	"github.com/mx-space/formcraft/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	svc      *Service
	notifier notify.Notifier
}

// NewHandler reports rejected credentials through notifier as well as in
// the response.
func NewHandler(svc *Service, notifier notify.Notifier) *Handler {
	return &Handler{svc: svc, notifier: notifier}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, optionalMW gin.HandlerFunc) {
	a := rg.Group("/auth")
	a.POST("/login", h.login)
	a.POST("/register", h.register)
	a.POST("/logout", authMW, h.logout)
	a.GET("/check", optionalMW, h.check)
}

func (h *Handler) login(c *gin.Context) {
	h.issue(c, h.svc.Login)
}

func (h *Handler) register(c *gin.Context) {
	h.issue(c, h.svc.Register)
}

func (h *Handler) issue(c *gin.Context, fn func(email, password string) (*TokenResponse, error)) {
	var dto CredentialsDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	res, err := fn(dto.Email, dto.Password)
	if err != nil {
		if errors.Is(err, ErrCredentialsRequired) {
			if nerr := h.notifier.Notify(c.Request.Context(), notify.Failure(CredentialsRequiredMessage)); nerr != nil {
				h.svc.logger.Warn("notify failed", zap.Error(nerr))
			}
			response.UnprocessableEntity(c, CredentialsRequiredMessage)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, res)
}

func (h *Handler) logout(c *gin.Context) {
	h.svc.Logout(middleware.CurrentSessionID(c))
	response.OK(c, gin.H{"ok": 1, "redirect": RedirectAfterLogout})
}

func (h *Handler) check(c *gin.Context) {
	response.OK(c, checkResponse{
		IsAuthenticated: middleware.IsAuthenticated(c),
		Email:           middleware.CurrentUserID(c),
	})
}
