package directory

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/peerlink/matchmaker/internal/model"
)

// Session is one browsing session over the directory. Its order is fixed
// when the session is created so that paging stays coherent while the
// caller changes filters.
type Session struct {
	ID    string
	Seed  uint64
	order []int32
	base  []model.MentorRecord
}

// NewSession builds a session whose order is the seeded shuffle of records.
func NewSession(id string, records []model.MentorRecord, seed uint64) *Session {
	return &Session{ID: id, Seed: seed, order: Permutation(len(records), seed), base: records}
}

// Records returns the session's shuffled snapshot.
func (s *Session) Records() []model.MentorRecord {
	out := make([]model.MentorRecord, len(s.order))
	for i, idx := range s.order {
		out[i] = s.base[idx]
	}
	return out
}

// Query filters the session snapshot and returns the requested page.
func (s *Session) Query(c model.FilterCriteria, page, pageSize int) Page {
	return Paginate(Filter(s.Records(), c), page, pageSize)
}

// Sessions keeps recently used sessions in an expiring LRU.
type Sessions struct {
	mu      sync.Mutex
	records []model.MentorRecord
	cache   *expirable.LRU[string, *Session]

	newID   func() string
	newSeed func() uint64
}

// NewSessions creates a session registry over records. maxSessions bounds the
// number of live sessions; ttl expires idle ones (0 disables expiry).
func NewSessions(records []model.MentorRecord, maxSessions int, ttl time.Duration) *Sessions {
	return &Sessions{
		records: records,
		cache:   expirable.NewLRU[string, *Session](maxSessions, nil, ttl),
		newID:   func() string { return uuid.New().String() },
		newSeed: rand.Uint64,
	}
}

// Acquire returns the session with the given id. A new session is created
// when id is empty or unknown; reset replaces the order of an existing
// session with a fresh seed while keeping its id.
func (s *Sessions) Acquire(id string, reset bool) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		sess, ok := s.cache.Get(id)
		if ok && !reset {
			return sess
		}
		if !ok {
			id = ""
		}
	}
	if id == "" {
		id = s.newID()
	}
	sess := NewSession(id, s.records, s.newSeed())
	s.cache.Add(id, sess)
	return sess
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int { return s.cache.Len() }

// Total is the size of the underlying directory.
func (s *Sessions) Total() int { return len(s.records) }
