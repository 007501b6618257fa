// Package agenda holds the canonical starred-session set and keeps it in
// sync with its two external encodings: a persistent storage slot and a
// shareable link.
package agenda

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/confsched/confsched/internal/core/sharelink"
)

// Store is the persistence backend for the starred set. LoadStarred returns
// the raw stored payload, or "" when the slot is absent or unreadable —
// read failures degrade to an empty set, they are not errors.
type Store interface {
	LoadStarred() string
	SaveStarred(payload string) error
	SaveLink(url string) error
}

// Reconcile merges the two startup sources into one canonical ID list.
// Precedence: a link that is present and decodes to a non-empty set wins
// (fromLink true, so the caller propagates it into storage); otherwise the
// stored payload is canonical. A link that is absent, empty, or garbage
// never overrides storage — a bare link must not wipe a saved agenda.
func Reconcile(link string, linkPresent bool, stored string) (ids []string, fromLink bool) {
	if linkPresent {
		if ids := sharelink.Decode(link); len(ids) > 0 {
			return ids, true
		}
	}
	return decodeStored(stored), false
}

// decodeStored parses the storage payload (a JSON array of IDs). Malformed
// payloads yield an empty set.
func decodeStored(payload string) []string {
	if payload == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(payload), &ids); err != nil {
		return nil
	}
	return ids
}

func encodeStored(ids []string) string {
	raw, err := json.Marshal(ids)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

// Set is the canonical starred-session set for the process lifetime. Every
// mutation persists both encodings; persistence failures are swallowed so a
// broken store never blocks the in-memory state.
type Set struct {
	mu      sync.Mutex
	ids     map[string]struct{}
	store   Store
	baseURL string
}

// Open loads the starred set, reconciling the optional link input against
// the stored payload. When the link wins it is written back to storage
// immediately; otherwise nothing is written until the next mutation.
func Open(store Store, baseURL, link string, linkPresent bool) *Set {
	ids, fromLink := Reconcile(link, linkPresent, store.LoadStarred())

	s := &Set{
		ids:     make(map[string]struct{}, len(ids)),
		store:   store,
		baseURL: baseURL,
	}
	for _, id := range ids {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
	if fromLink {
		s.persist()
	}
	return s
}

// Toggle adds id to the set if absent, removes it if present, and reports
// the resulting membership.
func (s *Set) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
	s.persist()

	_, member := s.ids[id]
	return member
}

// Adopt replaces the set with the IDs carried by link. A link that is
// empty or does not decode is rejected and the current set is kept,
// matching the precedence rule Open applies at startup.
func (s *Set) Adopt(link string) bool {
	ids := sharelink.Decode(link)
	if len(ids) == 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
	s.persist()
	return true
}

// Clear empties the set unconditionally. Confirmation is the caller's
// concern.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids = make(map[string]struct{})
	s.persist()
}

// Contains reports whether id is starred.
func (s *Set) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.ids[id]
	return ok
}

// IDs returns the starred IDs sorted, as a copy.
func (s *Set) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted()
}

// Len returns the number of starred sessions.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// ShareURL returns the shareable link for the current set: the bare base
// URL when nothing is starred.
func (s *Set) ShareURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sharelink.BuildURL(s.baseURL, s.sorted())
}

func (s *Set) sorted() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// persist writes both encodings. Callers hold the lock (or, from Open, have
// exclusive ownership). Write errors are deliberately dropped: persistence
// is fire-and-forget and must never surface to the caller.
func (s *Set) persist() {
	ids := s.sorted()
	_ = s.store.SaveStarred(encodeStored(ids))
	_ = s.store.SaveLink(sharelink.BuildURL(s.baseURL, ids))
}
