package form

import (
	"bytes"
	"encoding/json"

	"github.com/mx-space/formcraft/internal/models"
)

// UntitledFormTitle is used when the dashboard creates a form without a title.
const UntitledFormTitle = "Untitled Form"

type CreateFormDTO struct {
	Title string `json:"title"`
}

type UpdateFormDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// Summary is the dashboard list entry.
type Summary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FieldCount  int    `json:"field_count"`
}

func summarize(f models.Form) Summary {
	return Summary{ID: f.ID, Title: f.Title, Description: f.Description, FieldCount: len(f.Fields)}
}

func bindPatch(body []byte, dto *UpdateFormDTO) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	return dec.Decode(dto)
}
