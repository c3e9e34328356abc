package directory

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerlink/matchmaker/internal/model"
)

func newTestSessions(records []model.MentorRecord) *Sessions {
	s := NewSessions(records, 16, time.Hour)
	var ids, seeds int
	s.newID = func() string { ids++; return fmt.Sprintf("sess-%d", ids) }
	s.newSeed = func() uint64 { seeds++; return uint64(seeds) }
	return s
}

func TestSessions_AcquireCreatesAndReuses(t *testing.T) {
	s := newTestSessions(numbered(20))

	first := s.Acquire("", false)
	require.Equal(t, "sess-1", first.ID)
	assert.Equal(t, 1, s.Len())

	again := s.Acquire(first.ID, false)
	assert.Same(t, first, again)
	assert.Equal(t, 1, s.Len())
}

func TestSessions_UnknownIDGetsNewSession(t *testing.T) {
	s := newTestSessions(numbered(5))
	sess := s.Acquire("stale", false)
	assert.Equal(t, "sess-1", sess.ID)

	sess = s.Acquire("forged", true)
	assert.Equal(t, "sess-2", sess.ID)
}

func TestSessions_ResetKeepsIDNewOrder(t *testing.T) {
	s := newTestSessions(numbered(30))
	first := s.Acquire("", false)
	reset := s.Acquire(first.ID, true)

	assert.Equal(t, first.ID, reset.ID)
	assert.NotEqual(t, first.Seed, reset.Seed)
	assert.NotEqual(t, names(first.Records()), names(reset.Records()))
	assert.Same(t, reset, s.Acquire(first.ID, false))
}

func TestSession_OrderStableAcrossPagesAndFilters(t *testing.T) {
	recs := numbered(25)
	sess := NewSession("x", recs, 11)

	var seen []string
	for page := 1; page <= 3; page++ {
		p := sess.Query(model.FilterCriteria{}, page, 10)
		seen = append(seen, names(p.Items)...)
	}
	assert.Equal(t, names(Shuffle(recs, 11)), seen)

	// filtering keeps the session's relative order
	p := sess.Query(model.FilterCriteria{Search: "mentor-1"}, 1, 50)
	var want []string
	for _, n := range names(sess.Records()) {
		if len(n) == 9 && n[:8] == "mentor-1" {
			want = append(want, n)
		}
	}
	assert.Equal(t, want, names(p.Items))
}

func TestSessions_Total(t *testing.T) {
	assert.Equal(t, 7, newTestSessions(numbered(7)).Total())
}
