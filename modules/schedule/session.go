package schedule

import (
	"sort"
	"sync"
	"time"
)

// Session is the full state of one running vote. A session is immutable once
// registered; the registry entry is the only thing that changes, and it is
// removed exactly once when aggregation completes.
type Session struct {
	GuildID   string
	ChannelID string
	MessageID string

	EventNumber int
	Dates       []time.Time

	CollectStart time.Time
	CollectEnd   time.Time

	StartHour int
	EndHour   int
	Timezone  *time.Location

	AuthorText string
	WebsiteURL string
}

// Registry tracks the active sessions, at most one per guild. The start
// flow, the scheduler tick and manual aggregation all touch it concurrently,
// so every access goes through the lock.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

func (r *Registry) Create(s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[s.GuildID]; exists {
		return ErrAlreadyCollecting
	}
	r.sessions[s.GuildID] = s
	return nil
}

// Remove drops s only if it is the session currently registered for its
// guild, so a reconstructed copy cannot evict a live one. Removing an
// absent or superseded session is a no-op.
func (r *Registry) Remove(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessions[s.GuildID] == s {
		delete(r.sessions, s.GuildID)
	}
}

func (r *Registry) Get(guildID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[guildID]
}

// All returns a point-in-time copy so that a tick can keep iterating while
// other goroutines remove entries.
func (r *Registry) All() []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CollectEnd.Before(out[j].CollectEnd)
	})
	return out
}

// First returns the session with the nearest deadline, or nil when nothing
// is being collected.
func (r *Registry) First() *Session {
	all := r.All()
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
