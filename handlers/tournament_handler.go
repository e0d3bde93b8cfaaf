package handlers

import (
	"net/http"

	"github.com/Dosada05/tourney/services"
)

type TournamentHandler struct {
	tournamentService *services.TournamentService
}

func NewTournamentHandler(ts *services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
	}
}

// PreviewHandler godoc
// @Summary      Preview a draw
// @Description  Generates a bracket, schedule, group stage or court allocation without saving it.
// @Tags         brackets
// @Accept       json
// @Produce      json
// @Param        input  body      services.GenerateInput  true  "Draw settings"
// @Success      200    {object}  models.Tournament
// @Failure      400,422,429  {object}  map[string]string
// @Router       /brackets/preview [post]
func (h *TournamentHandler) PreviewHandler(w http.ResponseWriter, r *http.Request) {
	var input services.GenerateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Preview(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateHandler godoc
// @Summary      Generate and save a tournament
// @Description  Replaces any tournament stored under the same name and notifies websocket watchers.
// @Tags         tournaments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input  body      services.GenerateInput  true  "Draw settings"
// @Success      201    {object}  models.Tournament
// @Failure      400,401,422,429  {object}  map[string]string
// @Router       /tournaments [post]
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.GenerateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Generate(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler godoc
// @Summary      Search tournaments
// @Tags         tournaments
// @Produce      json
// @Param        q    query     string  false  "Fuzzy name query"
// @Success      200  {object}  map[string][]string
// @Router       /tournaments [get]
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	names, err := h.tournamentService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": names}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetHandler godoc
// @Summary      Get a stored tournament
// @Tags         tournaments
// @Produce      json
// @Param        name  path      string  true  "Tournament name"
// @Success      200   {object}  models.Tournament
// @Failure      404   {object}  map[string]string
// @Router       /tournaments/{name} [get]
func (h *TournamentHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	name, err := getNameFromURL(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Get(r.Context(), name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TextHandler godoc
// @Summary      Plain-text schedule
// @Tags         tournaments
// @Produce      plain
// @Param        name  path      string  true  "Tournament name"
// @Success      200   {string}  string
// @Failure      404   {object}  map[string]string
// @Router       /tournaments/{name}/text [get]
func (h *TournamentHandler) TextHandler(w http.ResponseWriter, r *http.Request) {
	name, err := getNameFromURL(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Get(r.Context(), name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	writeText(w, r, http.StatusOK, services.RenderTournament(tournament))
}

// DeleteHandler godoc
// @Summary      Delete a tournament
// @Tags         tournaments
// @Security     BearerAuth
// @Param        name  path  string  true  "Tournament name"
// @Success      204
// @Failure      401,404  {object}  map[string]string
// @Router       /tournaments/{name} [delete]
func (h *TournamentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	name, err := getNameFromURL(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.Delete(r.Context(), name); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PublishHandler godoc
// @Summary      Publish the schedule to object storage
// @Tags         tournaments
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Tournament name"
// @Success      200   {object}  storage.UploadResult
// @Failure      401,404,503  {object}  map[string]string
// @Router       /tournaments/{name}/publish [post]
func (h *TournamentHandler) PublishHandler(w http.ResponseWriter, r *http.Request) {
	name, err := getNameFromURL(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	res, err := h.tournamentService.Publish(r.Context(), name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"upload": res}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
