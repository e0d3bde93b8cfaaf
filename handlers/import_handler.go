package handlers

import (
	"context"
	"net/http"
)

// RegistrationImporter reads participant names from registration pages.
type RegistrationImporter interface {
	Import(ctx context.Context, urls ...string) ([]string, error)
}

type ImportHandler struct {
	importer RegistrationImporter
}

func NewImportHandler(importer RegistrationImporter) *ImportHandler {
	return &ImportHandler{importer: importer}
}

type importInput struct {
	URLs []string `json:"urls"`
}

// ImportRegistrations godoc
// @Summary      Import participants from registration pages
// @Description  Reads the Name column of the first table on every page.
// @Tags         imports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input  body      importInput  true  "Registration page URLs"
// @Success      200    {object}  map[string][]string
// @Failure      400,401,502  {object}  map[string]string
// @Router       /imports/registrations [post]
func (h *ImportHandler) ImportRegistrations(w http.ResponseWriter, r *http.Request) {
	var input importInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	names, err := h.importer.Import(r.Context(), input.URLs...)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"participants": names}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
