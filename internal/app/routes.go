package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/formcraft/internal/middleware"
	"github.com/mx-space/formcraft/internal/modules/auth"
	"github.com/mx-space/formcraft/internal/modules/editor"
	"github.com/mx-space/formcraft/internal/modules/form"
	"github.com/mx-space/formcraft/internal/modules/viewer"
	"github.com/mx-space/formcraft/internal/pkg/response"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes(validator middleware.TokenValidator) {
	r := a.router
	authMW := middleware.Auth(validator)
	optionalMW := middleware.OptionalAuth(validator)

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	api := r.Group(apiPrefix)
	auth.NewHandler(a.authSvc, a.notifier).RegisterRoutes(api, authMW, optionalMW)
	form.NewHandler(a.store).RegisterRoutes(api, authMW)
	editor.NewHandler(a.editors).RegisterRoutes(api, authMW)
	viewer.NewHandler(a.store, a.notifier, a.logger).RegisterRoutes(api)

	r.NoRoute(response.NotFound)
	r.NoMethod(response.MethodNotAllowed)
}
