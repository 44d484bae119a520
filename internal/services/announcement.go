package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/markjakearzadon/denovi-gobackend/internal/metrics"
	"github.com/markjakearzadon/denovi-gobackend/internal/models"
	"github.com/markjakearzadon/denovi-gobackend/internal/sanitizer"
)

// stored field names
const (
	fieldID        = "_id"
	fieldTitle     = "title"
	fieldMessage   = "message"
	fieldType      = "type"
	fieldStartDate = "start_date"
	fieldEndDate   = "end_date"
	fieldImageURL  = "image_url"
	fieldLinkURL   = "link_url"
	fieldLinkText  = "link_text"
	fieldPriority  = "priority"
	fieldCreatedAt = "created_at"
	fieldCreatedBy = "created_by"
	fieldIsActive  = "is_active"
)

type AnnouncementService struct {
	collection AnnouncementCollection
	loc        *time.Location
	now        func() time.Time
}

// NewAnnouncementService returns a service over collection. Calendar-day
// comparisons in GetForDate use loc, or UTC when loc is nil.
func NewAnnouncementService(collection AnnouncementCollection, loc *time.Location) *AnnouncementService {
	if loc == nil {
		loc = time.UTC
	}
	return &AnnouncementService{collection: collection, loc: loc, now: time.Now}
}

// ValidID reports whether id is safe to address a single document: non-empty,
// no path separators and no parent-directory sequence.
func ValidID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && !strings.Contains(id, "..")
}

// GetAll returns every announcement, newest start date first.
// A failed fetch yields an empty slice.
func (s *AnnouncementService) GetAll(ctx context.Context) []models.Announcement {
	docs, err := s.collection.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Str("section", "announcements").Str("method", "GetAll").Msg("Unable to fetch announcements")
		metrics.AnnouncementOps.WithLabelValues("get_all", "error").Inc()
		return []models.Announcement{}
	}

	now := s.localNow()
	out := make([]models.Announcement, 0, len(docs))
	for _, doc := range docs {
		out = append(out, fromDocument(doc, now))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out
}

// GetActive returns the flagged-active announcements whose window contains
// now, highest priority first.
func (s *AnnouncementService) GetActive(ctx context.Context, now time.Time) []models.Announcement {
	return s.filter(ctx, func(a models.Announcement) bool {
		return a.IsActive && a.InWindow(now)
	})
}

// GetForDate is GetActive at calendar-day granularity: an announcement covers
// date when date's day lies between the days of its start and end.
func (s *AnnouncementService) GetForDate(ctx context.Context, date time.Time) []models.Announcement {
	day := dayKey(date.In(s.loc))
	return s.filter(ctx, func(a models.Announcement) bool {
		return a.IsActive &&
			dayKey(a.StartDate.In(s.loc)) <= day &&
			day <= dayKey(a.EndDate.In(s.loc))
	})
}

// localNow is the current time in the service location, so zoneless date
// strings land on the same calendar day GetForDate compares against.
func (s *AnnouncementService) localNow() time.Time {
	return s.now().In(s.loc)
}

func (s *AnnouncementService) filter(ctx context.Context, keep func(models.Announcement) bool) []models.Announcement {
	all := s.GetAll(ctx)
	out := make([]models.Announcement, 0, len(all))
	for _, a := range all {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

// Add sanitizes f, stamps the creation time and stores a new announcement.
func (s *AnnouncementService) Add(ctx context.Context, f models.AnnouncementFields) (string, error) {
	logger := log.With().Str("section", "announcements").Str("method", "Add").Logger()

	now := s.localNow()
	doc := sanitizeFields(f, now, true)
	doc[fieldCreatedAt] = now.UTC()

	id, err := s.collection.Insert(ctx, doc)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to create announcement")
		metrics.AnnouncementOps.WithLabelValues("add", "error").Inc()
		return "", persistenceError(err)
	}

	logger.Debug().Str("id", id).Msg("Announcement created")
	metrics.AnnouncementOps.WithLabelValues("add", "ok").Inc()
	return id, nil
}

// Update sanitizes and writes only the fields supplied in f.
func (s *AnnouncementService) Update(ctx context.Context, id string, f models.AnnouncementFields) error {
	if !ValidID(id) {
		metrics.AnnouncementOps.WithLabelValues("update", "invalid").Inc()
		return ErrInvalidID
	}

	set := sanitizeFields(f, s.localNow(), false)
	if len(set) == 0 {
		return nil
	}
	return s.write(ctx, "update", id, set)
}

// SetActive flips the is_active flag only.
func (s *AnnouncementService) SetActive(ctx context.Context, id string, active bool) error {
	if !ValidID(id) {
		metrics.AnnouncementOps.WithLabelValues("set_active", "invalid").Inc()
		return ErrInvalidID
	}
	return s.write(ctx, "set_active", id, bson.M{fieldIsActive: active})
}

func (s *AnnouncementService) write(ctx context.Context, op, id string, set bson.M) error {
	if err := s.collection.Update(ctx, id, set); err != nil {
		log.Error().Err(err).Str("section", "announcements").Str("method", op).Str("id", id).Msg("Unable to update announcement")
		metrics.AnnouncementOps.WithLabelValues(op, "error").Inc()
		return persistenceError(err)
	}
	metrics.AnnouncementOps.WithLabelValues(op, "ok").Inc()
	return nil
}

func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	if !ValidID(id) {
		metrics.AnnouncementOps.WithLabelValues("delete", "invalid").Inc()
		return ErrInvalidID
	}

	if err := s.collection.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("section", "announcements").Str("method", "Delete").Str("id", id).Msg("Unable to delete announcement")
		metrics.AnnouncementOps.WithLabelValues("delete", "error").Inc()
		return persistenceError(err)
	}
	metrics.AnnouncementOps.WithLabelValues("delete", "ok").Inc()
	return nil
}

// CleanupExpired deactivates every active announcement whose end date is
// before now and returns how many were flipped. Each flip is independent;
// failures are logged and skipped.
func (s *AnnouncementService) CleanupExpired(ctx context.Context, now time.Time) int {
	logger := log.With().Str("section", "announcements").Str("method", "CleanupExpired").Logger()

	flipped := 0
	for _, a := range s.GetAll(ctx) {
		if !a.IsActive || !a.Expired(now) {
			continue
		}
		if err := s.SetActive(ctx, a.ID, false); err != nil {
			logger.Warn().Err(err).Str("id", a.ID).Msg("Skipping expired announcement")
			continue
		}
		flipped++
	}

	metrics.CleanupFlipped.Add(float64(flipped))
	logger.Info().Int("flipped", flipped).Msg("Expired announcements cleaned up")
	return flipped
}

// sanitizeFields converts raw form values into a stored document. With full
// set every field is written and missing values take their defaults;
// otherwise only supplied fields are.
func sanitizeFields(f models.AnnouncementFields, now time.Time, full bool) bson.M {
	doc := bson.M{}

	text := func(key string, v *string, limit int) {
		if v != nil || full {
			doc[key] = sanitizer.Text(derefString(v), limit)
		}
	}
	link := func(key string, v *string) {
		if v != nil || full {
			u, _ := sanitizer.URL(derefString(v))
			doc[key] = u
		}
	}
	date := func(key string, v any) {
		if v != nil || full {
			doc[key] = sanitizer.Date(v, now).UTC()
		}
	}

	text(fieldTitle, f.Title, models.MaxTitleLength)
	text(fieldMessage, f.Message, models.MaxMessageLength)
	text(fieldLinkText, f.LinkText, models.MaxLinkTextLength)
	text(fieldCreatedBy, f.CreatedBy, models.MaxCreatedByLength)
	if f.Type != nil || full {
		doc[fieldType] = string(sanitizer.EnumFold(derefString(f.Type), models.AnnouncementTypes, models.TypeInfo))
	}
	date(fieldStartDate, f.StartDate)
	date(fieldEndDate, f.EndDate)
	link(fieldImageURL, f.ImageURL)
	link(fieldLinkURL, f.LinkURL)
	if f.Priority != nil || full {
		doc[fieldPriority] = sanitizer.ClampInt(f.Priority, models.MinPriority, models.MaxPriority, models.MinPriority)
	}
	if f.IsActive != nil || full {
		doc[fieldIsActive] = sanitizer.Bool(f.IsActive)
	}

	return doc
}

// fromDocument normalizes a stored document, tolerating loosely typed legacy
// values the same way writes do.
func fromDocument(doc bson.M, now time.Time) models.Announcement {
	a := models.Announcement{
		ID:        documentID(doc[fieldID]),
		Title:     sanitizer.Text(doc[fieldTitle], models.MaxTitleLength),
		Message:   sanitizer.Text(doc[fieldMessage], models.MaxMessageLength),
		Type:      sanitizer.EnumFold(doc[fieldType], models.AnnouncementTypes, models.TypeInfo),
		StartDate: documentTime(doc[fieldStartDate], now),
		EndDate:   documentTime(doc[fieldEndDate], now),
		LinkText:  sanitizer.Text(doc[fieldLinkText], models.MaxLinkTextLength),
		Priority:  sanitizer.ClampInt(doc[fieldPriority], models.MinPriority, models.MaxPriority, models.MinPriority),
		CreatedAt: documentTime(doc[fieldCreatedAt], now),
		CreatedBy: sanitizer.Text(doc[fieldCreatedBy], models.MaxCreatedByLength),
		IsActive:  sanitizer.Bool(doc[fieldIsActive]),
	}
	if s, ok := doc[fieldImageURL].(string); ok {
		a.ImageURL, _ = sanitizer.URL(s)
	}
	if s, ok := doc[fieldLinkURL].(string); ok {
		a.LinkURL, _ = sanitizer.URL(s)
	}
	return a
}

func documentID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	}
	return ""
}

func documentTime(v any, now time.Time) time.Time {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0).UTC()
	}
	return sanitizer.Date(v, now)
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func dayKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
