package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/studyloop/ai-tutor/internal/model"
)

// DatabaseFile is the SQLite file name inside the data directory
const DatabaseFile = "aitutor.db"

// PinnedCardRecord persists one pinned flashcard snapshot
type PinnedCardRecord struct {
	Key       string `gorm:"primaryKey"`
	Payload   string // JSON-encoded card snapshot
	Position  int
	CreatedAt time.Time
}

// DocumentRecord persists one uploaded-document entry
type DocumentRecord struct {
	ID         string `gorm:"primaryKey"`
	Name       string
	UploadedAt time.Time
}

// Store is the local SQLite persistence layer
type Store struct {
	db *gorm.DB
}

// Open creates the data directory if needed, opens the database and runs
// migrations
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(dataDir, DatabaseFile)), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&PinnedCardRecord{}, &DocumentRecord{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

// SavePin upserts one pinned card snapshot at its display position
func (s *Store) SavePin(card model.Flashcard, position int) error {
	payload, err := json.Marshal(card)
	if err != nil {
		return err
	}
	record := PinnedCardRecord{
		Key:       card.Key(),
		Payload:   string(payload),
		Position:  position,
		CreatedAt: time.Now(),
	}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error
}

// DeletePin removes a persisted pin; missing keys are not an error
func (s *Store) DeletePin(key string) error {
	return s.db.Delete(&PinnedCardRecord{}, "key = ?", key).Error
}

// LoadPins returns persisted card snapshots in display order. Records whose
// payload no longer parses are skipped.
func (s *Store) LoadPins() ([]model.Flashcard, error) {
	var records []PinnedCardRecord
	if err := s.db.Order("position asc").Find(&records).Error; err != nil {
		return nil, err
	}

	cards := make([]model.Flashcard, 0, len(records))
	for _, record := range records {
		var card model.Flashcard
		if err := json.Unmarshal([]byte(record.Payload), &card); err != nil {
			continue
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// SaveDocument records one document upload
func (s *Store) SaveDocument(doc model.DocumentInfo) error {
	return s.db.Create(&DocumentRecord{
		ID:         doc.ID,
		Name:       doc.Name,
		UploadedAt: doc.UploadedAt,
	}).Error
}

// LoadDocuments returns the upload history in chronological order
func (s *Store) LoadDocuments() ([]model.DocumentInfo, error) {
	var records []DocumentRecord
	if err := s.db.Order("uploaded_at asc").Find(&records).Error; err != nil {
		return nil, err
	}

	docs := make([]model.DocumentInfo, 0, len(records))
	for _, record := range records {
		docs = append(docs, model.DocumentInfo{
			ID:         record.ID,
			Name:       record.Name,
			UploadedAt: record.UploadedAt,
		})
	}
	return docs, nil
}
