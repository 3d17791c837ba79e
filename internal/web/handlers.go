package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rbessler/inkwell/internal/errors"
	"github.com/rbessler/inkwell/internal/ops"
)

// Handlers contains HTTP route handlers for the entry API.
type Handlers struct {
	svc *ops.Service
	log *slog.Logger
}

// createRequest is the JSON body accepted by POST /entries.
type createRequest struct {
	Title       string   `json:"title"`
	Author      *string  `json:"author"`
	Category    string   `json:"category"`
	Status      *string  `json:"status"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	MediaType   *string  `json:"mediaType"`
	MediaURL    *string  `json:"mediaUrl"`
	IsLocked    bool     `json:"isLocked"`
	PublishDate *int64   `json:"publishDate"`
}

// updateRequest is the JSON body accepted by PUT /entries/{id}.
// Absent fields are left unchanged.
type updateRequest struct {
	Title       *string   `json:"title"`
	Author      *string   `json:"author"`
	Category    *string   `json:"category"`
	Status      *string   `json:"status"`
	Content     *string   `json:"content"`
	Tags        *[]string `json:"tags"`
	MediaType   *string   `json:"mediaType"`
	MediaURL    *string   `json:"mediaUrl"`
	IsLocked    *bool     `json:"isLocked"`
	PublishDate *int64    `json:"publishDate"`
}

// HandleList handles GET /entries.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.List(r.Context(), ops.ListInput{
		Category: ptrString(r.URL.Query().Get("category")),
	})
	if err != nil {
		renderError(w, h.log, err)
		return
	}
	renderJSON(w, http.StatusOK, entries)
}

// HandleGet handles GET /entries/{id}.
func (h *Handlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.Get(r.Context(), ops.GetInput{
		ID:       r.PathValue("id"),
		Category: ptrString(r.URL.Query().Get("category")),
	})
	if err != nil {
		renderError(w, h.log, err)
		return
	}
	renderJSON(w, http.StatusOK, e)
}

// HandleCreate handles POST /entries.
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(r, &req); err != nil {
		renderError(w, h.log, err)
		return
	}

	e, err := h.svc.Create(r.Context(), ops.CreateInput{
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Status:      req.Status,
		Content:     req.Content,
		Tags:        req.Tags,
		MediaType:   req.MediaType,
		MediaURL:    req.MediaURL,
		IsLocked:    req.IsLocked,
		PublishDate: req.PublishDate,
	})
	if err != nil {
		renderError(w, h.log, err)
		return
	}
	renderJSON(w, http.StatusCreated, e)
}

// HandleUpdate handles PUT /entries/{id}.
func (h *Handlers) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := decodeBody(r, &req); err != nil {
		renderError(w, h.log, err)
		return
	}

	e, err := h.svc.Update(r.Context(), ops.UpdateInput{
		ID:          r.PathValue("id"),
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Status:      req.Status,
		Content:     req.Content,
		Tags:        req.Tags,
		MediaType:   req.MediaType,
		MediaURL:    req.MediaURL,
		IsLocked:    req.IsLocked,
		PublishDate: req.PublishDate,
	})
	if err != nil {
		renderError(w, h.log, err)
		return
	}
	renderJSON(w, http.StatusOK, e)
}

// HandleDelete handles DELETE /entries/{id}.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Delete(r.Context(), ops.DeleteInput{ID: r.PathValue("id")})
	if err != nil {
		renderError(w, h.log, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleSearch handles GET /search.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.Search(r.Context(), ops.SearchInput{
		Query: r.URL.Query().Get("q"),
	})
	if err != nil {
		renderError(w, h.log, err)
		return
	}
	renderJSON(w, http.StatusOK, results)
}

// HandleIncrementViews handles POST /entries/{id}/views.
func (h *Handlers) HandleIncrementViews(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.svc.IncrementViews(r.Context(), id); err != nil {
		renderError(w, h.log, err)
		return
	}
	renderJSON(w, http.StatusOK, map[string]any{"success": true, "id": id})
}

// HandleCounts handles GET /counts.
func (h *Handlers) HandleCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.Counts(r.Context())
	if err != nil {
		renderError(w, h.log, err)
		return
	}
	renderJSON(w, http.StatusOK, counts)
}

// HandleHealthz handles GET /healthz.
func (h *Handlers) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeBody parses a JSON request body, rejecting unknown fields so a
// typoed field name fails loudly instead of silently leaving the target
// unchanged.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewValidation("request body is not valid JSON: " + err.Error())
	}
	return nil
}

// ptrString returns a pointer to s if non-empty, nil otherwise.
func ptrString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
