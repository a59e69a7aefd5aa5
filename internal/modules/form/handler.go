package form

import (
	"github.com/gin-gonic/gin"
	"github.com/mx-space/formcraft/internal/models"
	"github.com/mx-space/formcraft/internal/pkg/response"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/fields/types", h.fieldTypes)

	forms := rg.Group("/forms", authMW)
	forms.GET("", h.list)
	forms.POST("", h.create)
	forms.GET("/:id", h.get)
	forms.PUT("/:id", h.update)
	forms.DELETE("/:id", h.delete)
}

func (h *Handler) fieldTypes(c *gin.Context) {
	response.OK(c, models.FieldTypes())
}

func (h *Handler) list(c *gin.Context) {
	forms, err := h.store.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]Summary, 0, len(forms))
	for _, f := range forms {
		out = append(out, summarize(f))
	}
	response.OK(c, out)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateFormDTO
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&dto); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}
	if dto.Title == "" {
		dto.Title = UntitledFormTitle
	}
	form, err := h.store.Create(c.Request.Context(), dto.Title)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, form)
}

func (h *Handler) get(c *gin.Context) {
	form, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if form == nil {
		response.NotFoundRedirect(c, models.ErrNotFound.Error())
		return
	}
	response.OK(c, form)
}

// update accepts either a full form document or a title/description patch.
func (h *Handler) update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	body, err := c.GetRawData()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var next models.Form
	if err := next.UnmarshalJSON(body); err != nil {
		var dto UpdateFormDTO
		if jerr := bindPatch(body, &dto); jerr != nil {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		current, gerr := h.store.Get(ctx, id)
		if gerr != nil {
			response.InternalError(c, gerr)
			return
		}
		if current == nil {
			response.NotFoundRedirect(c, models.ErrNotFound.Error())
			return
		}
		if dto.Title != nil {
			current.Title = *dto.Title
		}
		if dto.Description != nil {
			current.Description = *dto.Description
		}
		next = *current
	}
	if next.ID != id {
		response.BadRequest(c, "form id does not match the path")
		return
	}

	existing, err := h.store.Get(ctx, id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if existing == nil {
		response.NotFoundRedirect(c, models.ErrNotFound.Error())
		return
	}
	if err := h.store.Update(ctx, &next); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, &next)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
