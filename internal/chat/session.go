package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studyloop/ai-tutor/internal/logger"
	"github.com/studyloop/ai-tutor/internal/model"
)

// networkApology is appended when the backend call itself fails
const networkApology = "Sorry, I'm having trouble reaching your tutor right now. Please try again in a moment."

// SubmitOptions controls how a submission is handled
type SubmitOptions struct {
	// SystemCommand marks a silent control token (e.g. "!select_topics"):
	// no user message is echoed into the transcript.
	SystemCommand bool

	// QuestionAnswer marks the submission as the answer to a previously
	// asked question. The echo is still appended like any user message.
	QuestionAnswer bool
}

// Store owns the conversation transcript. Messages are strictly
// append-ordered and immutable once appended; only Clear removes them.
type Store struct {
	mu       sync.RWMutex
	messages []model.Message
	loading  bool

	backend  Backend
	lessons  LessonSink
	onUpdate func()
	// onLessonPlanFromSelection is the navigation hook invoked when a plan
	// arrives out of a topic-selection flow.
	onLessonPlanFromSelection func()

	log *logger.Logger
}

// NewStore creates a session store. lessons may be nil when no lesson state
// is wired (plans arriving via chat are then only acknowledged).
func NewStore(backend Backend, lessons LessonSink, log *logger.Logger) *Store {
	return &Store{
		backend: backend,
		lessons: lessons,
		log:     log,
	}
}

// SetUpdateCallback sets the observer notified after every transcript or
// loading-flag change
func (s *Store) SetUpdateCallback(callback func()) {
	s.onUpdate = callback
}

// SetLessonPlanNavigator sets the hook invoked when a lesson plan arrives
// from a topic-selection flow
func (s *Store) SetLessonPlanNavigator(callback func()) {
	s.onLessonPlanFromSelection = callback
}

// Submit sends user input to the backend and appends the outcome to the
// transcript. Empty input is ignored. Unless the submission is a silent
// system command, the user message is echoed immediately, before the
// network call resolves. Failures surface as an apology message; Submit
// never returns an error past this boundary.
func (s *Store) Submit(ctx context.Context, text string, opts SubmitOptions) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}

	if !opts.SystemCommand {
		s.append(model.Message{
			ID:         uuid.NewString(),
			Text:       trimmed,
			IsFromUser: true,
			CreatedAt:  time.Now(),
		})
	}

	s.setLoading(true)
	defer s.setLoading(false)

	reply, err := s.backend.Chat(ctx, trimmed, opts.SystemCommand)
	if err != nil {
		s.log.Warn("chat request failed", "err", err)
		s.append(model.Message{
			ID:        uuid.NewString(),
			Text:      networkApology,
			CreatedAt: time.Now(),
		})
		return
	}

	s.append(s.normalize(reply))
}

// AddSystemMessage appends a transition narration entry without a network
// call, e.g. "Document processed, selecting topics...".
func (s *Store) AddSystemMessage(text string) {
	s.append(model.Message{
		ID:           uuid.NewString(),
		Text:         text,
		CreatedAt:    time.Now(),
		TeachingMode: model.TeachingModeSystem,
	})
}

// Clear empties the transcript. Pinned cards and topic/lesson state are
// unaffected.
func (s *Store) Clear() {
	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()
	s.notifyUpdate()
}

// Messages returns a snapshot of the transcript in append order
func (s *Store) Messages() []model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Loading reports whether a submission is in flight. The flag is a display
// hint; overlapping submissions race on it and the last to finish wins.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) append(msg model.Message) {
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
	s.notifyUpdate()
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
	s.notifyUpdate()
}

func (s *Store) notifyUpdate() {
	if s.onUpdate != nil {
		s.onUpdate()
	}
}
