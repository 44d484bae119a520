package models

import (
	"time"
)

// AnnouncementType is the display category of an announcement.
type AnnouncementType string

const (
	TypeInfo     AnnouncementType = "INFO"
	TypeUrgent   AnnouncementType = "URGENT"
	TypeEvent    AnnouncementType = "EVENT"
	TypeReminder AnnouncementType = "REMINDER"
)

// AnnouncementTypes lists every valid AnnouncementType.
var AnnouncementTypes = []AnnouncementType{TypeInfo, TypeUrgent, TypeEvent, TypeReminder}

const (
	MinPriority = 1
	MaxPriority = 5

	MaxTitleLength     = 200
	MaxMessageLength   = 2000
	MaxLinkTextLength  = 100
	MaxCreatedByLength = 100
)

// Announcement is a time-bound message shown between StartDate and EndDate.
//
// IsActive is the manual visibility flag and is independent of the date
// window: an active announcement outside its window is not shown, an
// inactive one is never shown.
type Announcement struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      AnnouncementType `json:"type"`
	StartDate time.Time        `json:"start_date"`
	EndDate   time.Time        `json:"end_date"`
	ImageURL  string           `json:"image_url,omitempty"`
	LinkURL   string           `json:"link_url,omitempty"`
	LinkText  string           `json:"link_text,omitempty"`
	Priority  int              `json:"priority"`
	CreatedAt time.Time        `json:"created_at"`
	CreatedBy string           `json:"created_by,omitempty"`
	IsActive  bool             `json:"is_active"`
}

// InWindow reports whether now falls inside [StartDate, EndDate].
func (a Announcement) InWindow(now time.Time) bool {
	return !now.Before(a.StartDate) && !now.After(a.EndDate)
}

// Expired reports whether EndDate has passed.
func (a Announcement) Expired(now time.Time) bool {
	return a.EndDate.Before(now)
}

// AnnouncementFields carries raw, unsanitized form values for a write.
// A nil field was not supplied; update leaves it untouched.
//
// StartDate and EndDate accept a time.Time or a date string, Priority any
// number or numeric string, IsActive a bool.
type AnnouncementFields struct {
	Title     *string `json:"title"`
	Message   *string `json:"message"`
	Type      *string `json:"type"`
	StartDate any     `json:"start_date"`
	EndDate   any     `json:"end_date"`
	ImageURL  *string `json:"image_url"`
	LinkURL   *string `json:"link_url"`
	LinkText  *string `json:"link_text"`
	Priority  any     `json:"priority"`
	CreatedBy *string `json:"created_by"`
	IsActive  any     `json:"is_active"`
}
