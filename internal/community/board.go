package community

import (
	"sort"
	"sync"
	"time"

	"barangay/internal/model"
)

// AnnouncementFilter narrows the announcement feed. Zero fields match all.
type AnnouncementFilter struct {
	Type     model.AnnouncementType
	Audience model.Audience
}

// DirectoryGroup is one category of the public directory.
type DirectoryGroup struct {
	Category model.DirectoryCategory `json:"category"`
	Entries  []model.DirectoryEntry  `json:"entries"`
}

// Board serves the read-only community content: announcements, the public
// directory and emergency hotlines.
type Board struct {
	mu            sync.RWMutex
	announcements []model.Announcement
	entries       []model.DirectoryEntry
	contacts      []model.EmergencyContact
	now           func() time.Time
}

func NewBoard(anns []model.Announcement, entries []model.DirectoryEntry, contacts []model.EmergencyContact) *Board {
	return &Board{
		announcements: append([]model.Announcement(nil), anns...),
		entries:       append([]model.DirectoryEntry(nil), entries...),
		contacts:      append([]model.EmergencyContact(nil), contacts...),
		now:           time.Now,
	}
}

// Announcements returns the active feed, most urgent first and newest first
// within a priority.
func (b *Board) Announcements(f AnnouncementFilter) []model.Announcement {
	now := b.now()

	b.mu.RLock()
	out := make([]model.Announcement, 0, len(b.announcements))
	for _, a := range b.announcements {
		if !a.IsActive || (a.ExpiryDate != nil && !a.ExpiryDate.After(now)) {
			continue
		}
		if f.Type != "" && a.Type != f.Type {
			continue
		}
		if !visibleTo(a.TargetAudience, f.Audience) {
			continue
		}
		out = append(out, a)
	}
	b.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Priority.Rank(), out[j].Priority.Rank()
		if pi != pj {
			return pi > pj
		}
		return out[i].PublishDate.After(out[j].PublishDate)
	})
	return out
}

func visibleTo(target, viewer model.Audience) bool {
	if viewer == "" || target == "" || target == model.AudienceAll {
		return true
	}
	return target == viewer
}

// Directory groups active entries by category in the fixed category order,
// skipping empty categories.
func (b *Board) Directory() []DirectoryGroup {
	b.mu.RLock()
	defer b.mu.RUnlock()

	groups := make([]DirectoryGroup, 0, len(model.DirectoryCategories))
	for _, c := range model.DirectoryCategories {
		var entries []model.DirectoryEntry
		for _, e := range b.entries {
			if e.IsActive && e.Category == c {
				entries = append(entries, e)
			}
		}
		if len(entries) > 0 {
			groups = append(groups, DirectoryGroup{Category: c, Entries: entries})
		}
	}
	return groups
}

func (b *Board) Emergency() []model.EmergencyContact {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]model.EmergencyContact, 0, len(b.contacts))
	for _, c := range b.contacts {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}
