package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Importance levels reported by the backend for a flashcard
const (
	ImportanceCritical   = "critical"
	ImportanceImportant  = "important"
	ImportanceGoodToKnow = "good to know"
)

// CardFace is one side of a flashcard
type CardFace struct {
	Title       string   `json:"title"`
	Explanation string   `json:"explanation,omitempty"`
	Points      []string `json:"points,omitempty"`
}

// Flashcard is a single study card. All fields except IsPinned are treated
// as immutable once the card is constructed.
type Flashcard struct {
	ID         string   `json:"id,omitempty"`
	Front      CardFace `json:"front"`
	Back       CardFace `json:"back"`
	Category   string   `json:"category,omitempty"`
	Importance string   `json:"importance,omitempty"`
	IsPinned   bool     `json:"is_pinned,omitempty"`
}

// FlashcardSet is a titled group of cards delivered in one reply
type FlashcardSet struct {
	Title string      `json:"title,omitempty"`
	Topic string      `json:"topic,omitempty"`
	Cards []Flashcard `json:"flashcards"`
}

// Key returns a stable identity for the card. The backend does not always
// supply an id, so cards without one fall back to a hash of their textual
// content. The hash is deterministic: the same card content always maps to
// the same key.
func (fc *Flashcard) Key() string {
	if fc.ID != "" {
		return fc.ID
	}

	h := sha256.New()
	h.Write([]byte(fc.Front.Title))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(fc.Front.Points, "\n")))
	h.Write([]byte{0})
	h.Write([]byte(fc.Back.Title))
	h.Write([]byte{0})
	h.Write([]byte(fc.Back.Explanation))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(fc.Back.Points, "\n")))
	return hex.EncodeToString(h.Sum(nil))[:16]
}
