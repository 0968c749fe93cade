package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barangay/internal/ledger"
	"barangay/internal/model"
	"barangay/internal/settings"
)

func TestDemo_LoadsIntoLedger(t *testing.T) {
	ds := Demo()
	l := ledger.New(settings.Default())
	require.NoError(t, l.Load(ds.Requests...))
	assert.Equal(t, 3, l.Len())

	url, err := l.Download(model.Session{UserID: "1", Role: model.RoleResident}, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/documents/bc-2024-001.pdf", url)

	s := l.Stats("1")
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 1, s.Processing)
}

func TestDemo_FeesMatchSchedule(t *testing.T) {
	fees := settings.Default()
	for _, r := range Demo().Requests {
		want, ok := fees.Fee(r.Type)
		require.True(t, ok)
		assert.True(t, want.Equal(r.PaymentAmount), r.ID)
	}
}

func TestDemo_FreshCopies(t *testing.T) {
	a := Demo()
	a.Requests[0].Status = model.StatusRejected
	*a.Requests[0].ProcessedDate = a.Requests[0].RequestDate

	b := Demo()
	assert.Equal(t, model.StatusCompleted, b.Requests[0].Status)
	assert.NotEqual(t, b.Requests[0].RequestDate, *b.Requests[0].ProcessedDate)
	assert.Len(t, b.Directory, 8)
	assert.Len(t, b.Emergency, 4)
}
