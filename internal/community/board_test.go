package community

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barangay/internal/model"
)

var today = time.Date(2024, 2, 2, 9, 0, 0, 0, time.UTC)

func day(d int) time.Time { return time.Date(2024, 2, d, 0, 0, 0, 0, time.UTC) }

func ptr(t time.Time) *time.Time { return &t }

func newBoard() *Board {
	b := NewBoard(
		[]model.Announcement{
			{ID: "cleanup", Type: model.AnnouncementEvent, Priority: model.PriorityMedium, PublishDate: day(1), ExpiryDate: ptr(day(3)), IsActive: true, TargetAudience: model.AudienceAll},
			{ID: "water", Type: model.AnnouncementMaintenance, Priority: model.PriorityHigh, PublishDate: day(1), IsActive: true, TargetAudience: model.AudienceAll},
			{ID: "checkup", Type: model.AnnouncementHealth, Priority: model.PriorityMedium, PublishDate: day(2), IsActive: true, TargetAudience: model.AudienceResidents},
			{ID: "expired", Type: model.AnnouncementEvent, Priority: model.PriorityUrgent, PublishDate: day(1), ExpiryDate: ptr(day(2)), IsActive: true},
			{ID: "draft", Type: model.AnnouncementGeneral, Priority: model.PriorityUrgent, PublishDate: day(1), IsActive: false},
			{ID: "council", Type: model.AnnouncementGeneral, Priority: model.PriorityLow, PublishDate: day(2), IsActive: true, TargetAudience: model.AudienceOfficials},
		},
		[]model.DirectoryEntry{
			{ID: "dir-1", Category: model.CategoryBarangayOfficials, IsActive: true},
			{ID: "dir-7", Category: model.CategoryUtilities, IsActive: true},
			{ID: "dir-3", Category: model.CategoryEmergencyServices, IsActive: true},
			{ID: "dir-4", Category: model.CategoryEmergencyServices, IsActive: false},
		},
		[]model.EmergencyContact{
			{ID: "em-1", IsActive: true},
			{ID: "em-2", IsActive: false},
		},
	)
	b.now = func() time.Time { return today }
	return b
}

func ids(anns []model.Announcement) []string {
	out := make([]string, 0, len(anns))
	for _, a := range anns {
		out = append(out, a.ID)
	}
	return out
}

func TestAnnouncements(t *testing.T) {
	tests := []struct {
		name   string
		filter AnnouncementFilter
		want   []string
	}{
		{"everything active", AnnouncementFilter{}, []string{"water", "checkup", "cleanup", "council"}},
		{"residents", AnnouncementFilter{Audience: model.AudienceResidents}, []string{"water", "checkup", "cleanup"}},
		{"officials", AnnouncementFilter{Audience: model.AudienceOfficials}, []string{"water", "cleanup", "council"}},
		{"by type", AnnouncementFilter{Type: model.AnnouncementEvent}, []string{"cleanup"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(newBoard().Announcements(tt.filter)))
		})
	}
}

func TestDirectory(t *testing.T) {
	groups := newBoard().Directory()
	require.Len(t, groups, 3)

	assert.Equal(t, model.CategoryBarangayOfficials, groups[0].Category)
	assert.Equal(t, model.CategoryEmergencyServices, groups[1].Category)
	require.Len(t, groups[1].Entries, 1)
	assert.Equal(t, "dir-3", groups[1].Entries[0].ID)
	assert.Equal(t, model.CategoryUtilities, groups[2].Category)
}

func TestEmergency(t *testing.T) {
	got := newBoard().Emergency()
	require.Len(t, got, 1)
	assert.Equal(t, "em-1", got[0].ID)
}
