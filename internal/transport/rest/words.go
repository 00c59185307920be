package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/wordbook/internal/domain"
	"github.com/heartmarshall/wordbook/internal/service/dictionary"
)

const maxBodyBytes = 1 << 20

type dictionaryService interface {
	GetEntry(ctx context.Context, input dictionary.GetEntryInput) (domain.Entry, error)
	CreateEntry(ctx context.Context, input dictionary.CreateEntryInput) (domain.Entry, error)
	GenerateEntry(ctx context.Context, input dictionary.GenerateEntryInput) (dictionary.GenerateResult, error)
	ListEntries(ctx context.Context, input dictionary.ListEntriesInput) ([]domain.Entry, error)
	DeleteEntry(ctx context.Context, id int64) error
}

// WordsHandler serves the /words resource.
type WordsHandler struct {
	svc      dictionaryService
	validate *requestValidator
	log      *slog.Logger
}

// NewWordsHandler creates a WordsHandler.
func NewWordsHandler(svc dictionaryService, logger *slog.Logger) (*WordsHandler, error) {
	v, err := newRequestValidator()
	if err != nil {
		return nil, err
	}
	return &WordsHandler{svc: svc, validate: v, log: logger.With("handler", "words")}, nil
}

// Register mounts the routes on mux.
func (h *WordsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /words", h.List)
	mux.HandleFunc("POST /words", h.Create)
	mux.HandleFunc("GET /words/{language}/{term}", h.Get)
	mux.HandleFunc("DELETE /words/{id}", h.Delete)
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// createWordRequest is either a manual entry (language, term, definition) or
// an AI-assisted one (term, ai_assisted, optional language).
type createWordRequest struct {
	Language   string `json:"language"    validate:"required_without=AIAssisted,max=50"`
	Term       string `json:"term"        validate:"required,max=255"`
	Definition string `json:"definition"  validate:"required_without=AIAssisted"`
	AIAssisted bool   `json:"ai_assisted"`
}

type entryResponse struct {
	ID         int64              `json:"id"`
	Language   string             `json:"language"`
	Term       string             `json:"term"`
	Definition string             `json:"definition"`
	Sentences  []sentenceResponse `json:"sentences"`
}

type sentenceResponse struct {
	ID      int64   `json:"id"`
	Example string  `json:"example"`
	Meaning *string `json:"meaning"`
}

func toEntryResponse(e domain.Entry) entryResponse {
	resp := entryResponse{
		ID:         e.ID,
		Language:   e.Language,
		Term:       e.Term,
		Definition: e.Definition,
		Sentences:  make([]sentenceResponse, len(e.Sentences)),
	}
	for i, s := range e.Sentences {
		resp.Sentences[i] = sentenceResponse{ID: s.ID, Example: s.Example, Meaning: s.Meaning}
	}
	return resp
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

// Get serves GET /words/{language}/{term}.
func (h *WordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.svc.GetEntry(r.Context(), dictionary.GetEntryInput{
		Language: r.PathValue("language"),
		Term:     r.PathValue("term"),
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// List serves GET /words?limit=&offset=.
func (h *WordsHandler) List(w http.ResponseWriter, r *http.Request) {
	var input dictionary.ListEntriesInput
	var err error
	if input.Limit, err = queryInt(r, "limit"); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	if input.Offset, err = queryInt(r, "offset"); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	entries, err := h.svc.ListEntries(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toEntryResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create serves POST /words. A manual entry answers 201. An AI-assisted entry
// answers 201 when it was generated and 200 when it was already stored.
func (h *WordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createWordRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "request body is empty")
			return
		}
		writeError(w, http.StatusBadRequest, "malformed JSON body: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	if req.AIAssisted {
		result, err := h.svc.GenerateEntry(r.Context(), dictionary.GenerateEntryInput{
			Term:     req.Term,
			Language: req.Language,
		})
		if err != nil {
			writeServiceError(w, r, h.log, err)
			return
		}
		status := http.StatusOK
		if result.Outcome == dictionary.OutcomeCreated {
			status = http.StatusCreated
		}
		writeJSON(w, status, toEntryResponse(result.Entry))
		return
	}

	entry, err := h.svc.CreateEntry(r.Context(), dictionary.CreateEntryInput{
		Language:   req.Language,
		Term:       req.Term,
		Definition: req.Definition,
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryResponse(entry))
}

// Delete serves DELETE /words/{id}. Unknown ids answer 204 as well.
func (h *WordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeServiceError(w, r, h.log, domain.NewValidationError("id", "must be an integer"))
		return
	}

	if err := h.svc.DeleteEntry(r.Context(), id); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.NewValidationError(name, fmt.Sprintf("%q is not an integer", raw))
	}
	return &v, nil
}
