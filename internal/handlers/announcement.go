package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"

	"github.com/markjakearzadon/denovi-gobackend/internal/models"
	"github.com/markjakearzadon/denovi-gobackend/internal/sanitizer"
	"github.com/markjakearzadon/denovi-gobackend/internal/services"
)

// AnnouncementStore is the announcement service as seen by the handlers.
type AnnouncementStore interface {
	GetAll(ctx context.Context) []models.Announcement
	GetActive(ctx context.Context, now time.Time) []models.Announcement
	GetForDate(ctx context.Context, date time.Time) []models.Announcement
	Add(ctx context.Context, f models.AnnouncementFields) (string, error)
	Update(ctx context.Context, id string, f models.AnnouncementFields) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
	CleanupExpired(ctx context.Context, now time.Time) int
}

// AnnouncementHandler handles HTTP requests for announcements
type AnnouncementHandler struct {
	store AnnouncementStore
	loc   *time.Location
	now   func() time.Time
}

// NewAnnouncementHandler creates a new AnnouncementHandler. Date-only query
// values are read in loc.
func NewAnnouncementHandler(store AnnouncementStore, loc *time.Location) *AnnouncementHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AnnouncementHandler{store: store, loc: loc, now: time.Now}
}

type listQuery struct {
	Date string `schema:"date"`
}

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

const maxBodyBytes = 1 << 20

// GetAnnouncements handles GET /api/announcements?date=YYYY-MM-DD. Only
// active announcements are public: those covering date when given, otherwise
// those live now.
func (h *AnnouncementHandler) GetAnnouncements(w http.ResponseWriter, r *http.Request) {
	var q listQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		http.Error(w, "Invalid query", http.StatusBadRequest)
		return
	}

	now := h.now().In(h.loc)
	var list []models.Announcement
	if q.Date != "" {
		list = h.store.GetForDate(r.Context(), sanitizer.Date(q.Date, now))
	} else {
		list = h.store.GetActive(r.Context(), now)
	}
	writeList(w, list)
}

// GetAllAnnouncements handles GET /api/announcements/all, inactive and
// expired announcements included.
func (h *AnnouncementHandler) GetAllAnnouncements(w http.ResponseWriter, r *http.Request) {
	writeList(w, h.store.GetAll(r.Context()))
}

func writeList(w http.ResponseWriter, list []models.Announcement) {
	if list == nil {
		list = []models.Announcement{}
	}
	writeJSON(w, http.StatusOK, list)
}

// CreateAnnouncement handles POST /api/announcement
func (h *AnnouncementHandler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var fields models.AnnouncementFields
	if err := decodeBody(w, r, &fields); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if fields.CreatedBy == nil {
		if claims, ok := AdminFromContext(r.Context()); ok {
			name := claims.Name
			fields.CreatedBy = &name
		}
	}

	id, err := h.store.Add(r.Context(), fields)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// UpdateAnnouncement handles PATCH /api/announcement/{announcementID}
func (h *AnnouncementHandler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["announcementID"]

	var fields models.AnnouncementFields
	if err := decodeBody(w, r, &fields); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.store.Update(r.Context(), id, fields); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// SetAnnouncementActive handles PATCH /api/announcement/{announcementID}/active
func (h *AnnouncementHandler) SetAnnouncementActive(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["announcementID"]

	var req setActiveRequest
	if err := decodeBody(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "is_active field is required", http.StatusBadRequest)
		return
	}

	if err := h.store.SetActive(r.Context(), id, *req.IsActive); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id, "is_active": *req.IsActive})
}

// DeleteAnnouncement handles DELETE /api/announcement/{announcementID}
func (h *AnnouncementHandler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), mux.Vars(r)["announcementID"]); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CleanupExpired handles POST /api/announcements/cleanup
func (h *AnnouncementHandler) CleanupExpired(w http.ResponseWriter, r *http.Request) {
	n := h.store.CleanupExpired(r.Context(), h.now())
	writeJSON(w, http.StatusOK, map[string]int{"flipped": n})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidID):
		http.Error(w, "Invalid announcement ID", http.StatusBadRequest)
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, "Announcement not found", http.StatusNotFound)
	default:
		http.Error(w, "Failed to save announcement", http.StatusInternalServerError)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
