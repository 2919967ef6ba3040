package flashcards

import (
	"sync"

	"github.com/studyloop/ai-tutor/internal/logger"
	"github.com/studyloop/ai-tutor/internal/model"
)

// PinStore is the optional persistence collaborator for the pinned set
type PinStore interface {
	SavePin(card model.Flashcard, position int) error
	DeletePin(key string) error
	LoadPins() ([]model.Flashcard, error)
}

// Store is the deduplicated, order-preserving working set of pinned cards.
// It is the source of truth for pinned display state; a card's own IsPinned
// field is advisory and may lag.
type Store struct {
	mu    sync.RWMutex
	order []string
	cards map[string]model.Flashcard

	persist  PinStore
	onUpdate func()
	log      *logger.Logger
}

// NewStore creates a pinned-card store. persist may be nil; the set then
// lives only for the process lifetime.
func NewStore(persist PinStore, log *logger.Logger) *Store {
	return &Store{
		cards:   make(map[string]model.Flashcard),
		persist: persist,
		log:     log,
	}
}

// SetUpdateCallback sets the observer notified after every change
func (s *Store) SetUpdateCallback(callback func()) {
	s.onUpdate = callback
}

// Pin adds a snapshot of the card to the set, marked pinned. Pinning an
// already-pinned key replaces its snapshot in place, so repeated pins never
// duplicate an entry or reorder the display list.
func (s *Store) Pin(card model.Flashcard) {
	key := card.Key()
	snapshot := card
	snapshot.IsPinned = true

	s.mu.Lock()
	position, exists := s.position(key)
	if !exists {
		position = len(s.order)
		s.order = append(s.order, key)
	}
	s.cards[key] = snapshot
	s.mu.Unlock()

	s.save(snapshot, position)
	s.notifyUpdate()
}

// Unpin removes the card's entry if present; absent keys are a no-op
func (s *Store) Unpin(card model.Flashcard) {
	key := card.Key()

	s.mu.Lock()
	if _, exists := s.cards[key]; !exists {
		s.mu.Unlock()
		return
	}
	delete(s.cards, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.DeletePin(key); err != nil {
			s.log.Warn("failed to delete persisted pin", "key", key, "err", err)
		}
	}
	s.notifyUpdate()
}

// PinAll pins every card that is neither marked pinned on its source object
// nor already captured in the set (the two are checked independently: a
// reloaded card may carry IsPinned without the set having been restored).
// Unlike Pin, cards already present keep their existing snapshot.
func (s *Store) PinAll(cards []model.Flashcard) {
	changed := false
	for _, card := range cards {
		if card.IsPinned {
			continue
		}
		key := card.Key()

		s.mu.Lock()
		if _, exists := s.cards[key]; exists {
			s.mu.Unlock()
			continue
		}
		snapshot := card
		snapshot.IsPinned = true
		position := len(s.order)
		s.order = append(s.order, key)
		s.cards[key] = snapshot
		s.mu.Unlock()

		s.save(snapshot, position)
		changed = true
	}
	if changed {
		s.notifyUpdate()
	}
}

// IsPinned reports whether the card's key is captured in the set
func (s *Store) IsPinned(card model.Flashcard) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.cards[card.Key()]
	return exists
}

// Cards returns the pinned snapshots in insertion order
func (s *Store) Cards() []model.Flashcard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Flashcard, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.cards[key])
	}
	return out
}

// Count returns the number of pinned cards
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Restore loads persisted pins into the set, keeping their stored order.
// Keys already present are left untouched.
func (s *Store) Restore() {
	if s.persist == nil {
		return
	}
	cards, err := s.persist.LoadPins()
	if err != nil {
		s.log.Warn("failed to restore pinned cards", "err", err)
		return
	}

	s.mu.Lock()
	for _, card := range cards {
		key := card.Key()
		if _, exists := s.cards[key]; exists {
			continue
		}
		card.IsPinned = true
		s.order = append(s.order, key)
		s.cards[key] = card
	}
	s.mu.Unlock()

	if len(cards) > 0 {
		s.notifyUpdate()
	}
}

// position must be called with the lock held
func (s *Store) position(key string) (int, bool) {
	for i, k := range s.order {
		if k == key {
			return i, true
		}
	}
	return 0, false
}

func (s *Store) save(card model.Flashcard, position int) {
	if s.persist == nil {
		return
	}
	if err := s.persist.SavePin(card, position); err != nil {
		s.log.Warn("failed to persist pin", "key", card.Key(), "err", err)
	}
}

func (s *Store) notifyUpdate() {
	if s.onUpdate != nil {
		s.onUpdate()
	}
}
