package topics

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studyloop/ai-tutor/internal/gateway"
	"github.com/studyloop/ai-tutor/internal/logger"
	"github.com/studyloop/ai-tutor/internal/model"
)

// Backend is the slice of the gateway the topic store needs
type Backend interface {
	Topics(ctx context.Context) ([]model.Topic, error)
	UploadDocument(ctx context.Context, filename string, content []byte) (*gateway.UploadResult, error)
}

// DocumentStore is the optional persistence collaborator for upload history
type DocumentStore interface {
	SaveDocument(doc model.DocumentInfo) error
	LoadDocuments() ([]model.DocumentInfo, error)
}

// Store tracks the extracted topic tree and document uploads. The fetch
// state machine is Empty -> Loading -> Success|Error, with Loading entered
// on every refresh; Success and Error only return to Empty via Reset or a
// fetch that produced no usable topics.
type Store struct {
	mu        sync.RWMutex
	state     model.FetchState
	topics    []model.Topic
	errText   string
	documents []model.DocumentInfo

	backend  Backend
	docstore DocumentStore
	onUpdate func()
	log      *logger.Logger
}

// NewStore creates a topic store in the Empty state. docstore may be nil.
func NewStore(backend Backend, docstore DocumentStore, log *logger.Logger) *Store {
	return &Store{
		state:    model.FetchStateEmpty,
		backend:  backend,
		docstore: docstore,
		log:      log,
	}
}

// SetUpdateCallback sets the observer notified after every state change
func (s *Store) SetUpdateCallback(callback func()) {
	s.onUpdate = callback
}

// State returns the current fetch state
func (s *Store) State() model.FetchState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Topics returns the most recently fetched topic tree (Success state only)
func (s *Store) Topics() []model.Topic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Topic, len(s.topics))
	copy(out, s.topics)
	return out
}

// ErrorText returns the failure description of the last fetch, if any
func (s *Store) ErrorText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errText
}

// Documents returns the upload history in chronological order
func (s *Store) Documents() []model.DocumentInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.DocumentInfo, len(s.documents))
	copy(out, s.documents)
	return out
}

// Refresh fetches the topic tree. Transport and parse failures land in
// Error; a well-formed reply without usable topics lands back in Empty,
// never a fabricated Success.
func (s *Store) Refresh(ctx context.Context) {
	s.transition(model.FetchStateLoading, nil, "")

	topics, err := s.backend.Topics(ctx)
	if err != nil {
		s.log.Warn("topics fetch failed", "err", err)
		s.transition(model.FetchStateError, nil, err.Error())
		return
	}
	if topics == nil {
		s.transition(model.FetchStateEmpty, nil, "")
		return
	}
	s.transition(model.FetchStateSuccess, topics, "")
}

// Reset returns the store to Empty. This is the only path out of a settled
// state that does not go through a fetch.
func (s *Store) Reset() {
	s.transition(model.FetchStateEmpty, nil, "")
}

// UploadDocument sends a study document to the backend. On acknowledgement
// the upload is recorded locally and the topic tree is updated: from topics
// embedded in the reply when present, otherwise via exactly one refresh.
func (s *Store) UploadDocument(ctx context.Context, filename string, content []byte) error {
	result, err := s.backend.UploadDocument(ctx, filename, content)
	if err != nil {
		return err
	}

	doc := model.DocumentInfo{
		ID:         uuid.NewString(),
		Name:       filename,
		UploadedAt: time.Now(),
	}
	s.mu.Lock()
	s.documents = append(s.documents, doc)
	s.mu.Unlock()

	if s.docstore != nil {
		if err := s.docstore.SaveDocument(doc); err != nil {
			s.log.Warn("failed to persist document record", "name", doc.Name, "err", err)
		}
	}

	if result.Topics != nil {
		s.transition(model.FetchStateSuccess, result.Topics, "")
		return nil
	}
	s.Refresh(ctx)
	return nil
}

// RestoreDocuments loads the persisted upload history
func (s *Store) RestoreDocuments() {
	if s.docstore == nil {
		return
	}
	docs, err := s.docstore.LoadDocuments()
	if err != nil {
		s.log.Warn("failed to restore document history", "err", err)
		return
	}
	s.mu.Lock()
	s.documents = docs
	s.mu.Unlock()
	if len(docs) > 0 {
		s.notifyUpdate()
	}
}

func (s *Store) transition(state model.FetchState, topics []model.Topic, errText string) {
	s.mu.Lock()
	s.state = state
	s.topics = topics
	s.errText = errText
	s.mu.Unlock()
	s.notifyUpdate()
}

func (s *Store) notifyUpdate() {
	if s.onUpdate != nil {
		s.onUpdate()
	}
}
