package progress

import (
	"context"
	"sync"

	"github.com/studyloop/ai-tutor/internal/gateway"
	"github.com/studyloop/ai-tutor/internal/logger"
	"github.com/studyloop/ai-tutor/internal/model"
)

// Backend is the slice of the gateway the progress store needs
type Backend interface {
	Knowledge(ctx context.Context) (*gateway.KnowledgeReply, error)
	TopicProgress(ctx context.Context, topic string) (*gateway.TopicProgressReply, error)
	Patterns(ctx context.Context) (*gateway.PatternsReply, error)
	Track(ctx context.Context, event gateway.TrackEvent) error
}

// Store fetches knowledge and learning-pattern aggregates. Topic aggregates
// are cached by topic name for the session to avoid redundant fetches.
type Store struct {
	mu         sync.RWMutex
	topicCache map[string]model.TopicProgress

	backend Backend
	log     *logger.Logger
}

// NewStore creates a progress store
func NewStore(backend Backend, log *logger.Logger) *Store {
	return &Store{
		topicCache: make(map[string]model.TopicProgress),
		backend:    backend,
		log:        log,
	}
}

// FetchUserProgress returns the per-user knowledge summary. When the
// backend sends a flat topic list instead of pre-bucketed ones, topics are
// bucketed client-side: <40 weak, 40-69 medium, >=70 strong.
func (s *Store) FetchUserProgress(ctx context.Context) (*model.UserProgress, error) {
	reply, err := s.backend.Knowledge(ctx)
	if err != nil {
		return nil, err
	}

	progress := &model.UserProgress{
		UserID:           reply.UserID,
		AverageKnowledge: reply.AverageKnowledge,
		TopicsStudied:    reply.TopicsStudied,
		WeakTopics:       []string{},
		MediumTopics:     []string{},
		StrongTopics:     []string{},
	}

	if reply.Bucketed() {
		progress.WeakTopics = append(progress.WeakTopics, reply.WeakTopics...)
		progress.MediumTopics = append(progress.MediumTopics, reply.MediumTopics...)
		progress.StrongTopics = append(progress.StrongTopics, reply.StrongTopics...)
		return progress, nil
	}

	for _, topic := range reply.Topics {
		switch model.KnowledgeBucket(topic.Level) {
		case "strong":
			progress.StrongTopics = append(progress.StrongTopics, topic.Name)
		case "medium":
			progress.MediumTopics = append(progress.MediumTopics, topic.Name)
		default:
			progress.WeakTopics = append(progress.WeakTopics, topic.Name)
		}
	}
	return progress, nil
}

// FetchTopicProgress returns the aggregate for one topic, served from the
// session cache after the first fetch
func (s *Store) FetchTopicProgress(ctx context.Context, topic string) (*model.TopicProgress, error) {
	s.mu.RLock()
	cached, ok := s.topicCache[topic]
	s.mu.RUnlock()
	if ok {
		return &cached, nil
	}

	reply, err := s.backend.TopicProgress(ctx, topic)
	if err != nil {
		return nil, err
	}

	tp := model.TopicProgress{
		Name:              reply.Name,
		Level:             reply.Level,
		LastUpdated:       reply.LastUpdated,
		Status:            reply.Status,
		StudySessions:     reply.StudySessions,
		QuizAttempts:      reply.QuizAttempts,
		FlashcardSessions: reply.FlashcardSessions,
		TotalStudyMinutes: reply.TotalStudyMinutes,
	}
	if tp.Name == "" {
		tp.Name = topic
	}

	s.mu.Lock()
	s.topicCache[topic] = tp
	s.mu.Unlock()
	return &tp, nil
}

// FetchLearningPatterns returns the interaction analysis with defaults
// substituted for anything the payload omitted
func (s *Store) FetchLearningPatterns(ctx context.Context) (*model.LearningPattern, error) {
	reply, err := s.backend.Patterns(ctx)
	if err != nil {
		return nil, err
	}

	pattern := &model.LearningPattern{
		InteractionCounts: reply.InteractionCounts,
		StudyRegularity:   reply.StudyRegularity,
	}
	if pattern.InteractionCounts == nil {
		pattern.InteractionCounts = map[string]int{}
	}
	if pattern.StudyRegularity == "" {
		pattern.StudyRegularity = "unknown"
	}
	for _, insight := range reply.Insights {
		pattern.Insights = append(pattern.Insights, model.Insight{
			Type:        insight.Type,
			Value:       insight.Value,
			Description: insight.Description,
		})
	}
	return pattern, nil
}

// KnowledgeLevel resolves the user's current level for a topic, defaulting
// to 0 when the lookup fails; knowledge data always has a safe default.
func (s *Store) KnowledgeLevel(ctx context.Context, topic string) float64 {
	tp, err := s.FetchTopicProgress(ctx, topic)
	if err != nil {
		s.log.Warn("knowledge lookup failed, defaulting to 0", "topic", topic, "err", err)
		return 0
	}
	return tp.Level
}

// InvalidateCache drops all cached topic aggregates
func (s *Store) InvalidateCache() {
	s.mu.Lock()
	s.topicCache = make(map[string]model.TopicProgress)
	s.mu.Unlock()
}

// TrackQuizResult reports a completed quiz. The cached aggregate for the
// topic is invalidated so the next fetch reflects the attempt.
func (s *Store) TrackQuizResult(ctx context.Context, topic string, score float64, totalQuestions, correctAnswers int) error {
	err := s.backend.Track(ctx, gateway.TrackEvent{
		InteractionType: gateway.TrackQuizResult,
		Topic:           topic,
		Score:           score,
		TotalQuestions:  totalQuestions,
		CorrectAnswers:  correctAnswers,
	})
	if err == nil {
		s.invalidateTopic(topic)
	}
	return err
}

// TrackStudySession reports study time spent on a topic
func (s *Store) TrackStudySession(ctx context.Context, topic string, durationMinutes int) error {
	err := s.backend.Track(ctx, gateway.TrackEvent{
		InteractionType: gateway.TrackStudySession,
		Topic:           topic,
		DurationMinutes: durationMinutes,
	})
	if err == nil {
		s.invalidateTopic(topic)
	}
	return err
}

// TrackFlashcardReview reports a flashcard review session
func (s *Store) TrackFlashcardReview(ctx context.Context, topic string, cardsReviewed int) error {
	err := s.backend.Track(ctx, gateway.TrackEvent{
		InteractionType: gateway.TrackFlashcardReview,
		Topic:           topic,
		CardsReviewed:   cardsReviewed,
	})
	if err == nil {
		s.invalidateTopic(topic)
	}
	return err
}

// TrackTopicView reports that the user viewed a topic
func (s *Store) TrackTopicView(ctx context.Context, topic string) error {
	return s.backend.Track(ctx, gateway.TrackEvent{
		InteractionType: gateway.TrackTopicView,
		Topic:           topic,
	})
}

func (s *Store) invalidateTopic(topic string) {
	s.mu.Lock()
	delete(s.topicCache, topic)
	s.mu.Unlock()
}
