package lesson

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/studyloop/ai-tutor/internal/gateway"
	"github.com/studyloop/ai-tutor/internal/logger"
	"github.com/studyloop/ai-tutor/internal/model"
)

// knowledgeLookupLimit bounds concurrent per-topic knowledge fetches during
// curriculum generation
const knowledgeLookupLimit = 4

// Planner is the slice of the gateway the lesson store needs
type Planner interface {
	GenerateLessonPlan(ctx context.Context, req gateway.LessonPlanRequest) (*model.LessonPlan, error)
	GenerateCurriculum(ctx context.Context, req gateway.CurriculumRequest) (*model.Curriculum, error)
}

// KnowledgeSource resolves the user's current knowledge level for a topic.
// Implementations default to 0 when no data is available.
type KnowledgeSource interface {
	KnowledgeLevel(ctx context.Context, topic string) float64
}

// Store holds the most recently generated lesson plan and curriculum. Both
// are replaced wholesale on success and left untouched on failure.
type Store struct {
	mu         sync.RWMutex
	plan       *model.LessonPlan
	curriculum *model.Curriculum
	errText    string

	planner   Planner
	knowledge KnowledgeSource
	onUpdate  func()
	log       *logger.Logger
}

// NewStore creates a lesson store
func NewStore(planner Planner, knowledge KnowledgeSource, log *logger.Logger) *Store {
	return &Store{
		planner:   planner,
		knowledge: knowledge,
		log:       log,
	}
}

// SetUpdateCallback sets the observer notified after every change
func (s *Store) SetUpdateCallback(callback func()) {
	s.onUpdate = callback
}

// InstallLessonPlan replaces the current plan with one that arrived through
// the chat flow
func (s *Store) InstallLessonPlan(plan *model.LessonPlan) {
	s.mu.Lock()
	s.plan = plan
	s.errText = ""
	s.mu.Unlock()
	s.notifyUpdate()
}

// GenerateLessonPlan requests a plan for one topic, feeding the user's
// current knowledge level into the generation call. Failure records an
// error message and leaves the previous plan untouched.
func (s *Store) GenerateLessonPlan(ctx context.Context, topic string, subtopics []string, timeAvailable int) error {
	level := s.knowledge.KnowledgeLevel(ctx, topic)

	plan, err := s.planner.GenerateLessonPlan(ctx, gateway.LessonPlanRequest{
		Topic:          topic,
		Subtopics:      subtopics,
		TimeAvailable:  timeAvailable,
		KnowledgeLevel: level,
	})
	if err != nil {
		s.log.Warn("lesson plan generation failed", "topic", topic, "err", err)
		s.setError(err.Error())
		return err
	}

	s.mu.Lock()
	s.plan = plan
	s.errText = ""
	s.mu.Unlock()
	s.notifyUpdate()
	return nil
}

// GenerateCurriculum requests a multi-topic curriculum. Knowledge levels
// are resolved concurrently per topic before the generation call; there is
// no ordering dependency between the lookups.
func (s *Store) GenerateCurriculum(ctx context.Context, topicNames []string, totalTimeAvailable int) error {
	levels := make([]float64, len(topicNames))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(knowledgeLookupLimit)
	for i, topic := range topicNames {
		i, topic := i, topic
		g.Go(func() error {
			levels[i] = s.knowledge.KnowledgeLevel(gctx, topic)
			return nil
		})
	}
	_ = g.Wait()

	byTopic := make(map[string]float64, len(topicNames))
	for i, topic := range topicNames {
		byTopic[topic] = levels[i]
	}

	curriculum, err := s.planner.GenerateCurriculum(ctx, gateway.CurriculumRequest{
		Topics:             topicNames,
		TotalTimeAvailable: totalTimeAvailable,
		KnowledgeLevels:    byTopic,
	})
	if err != nil {
		s.log.Warn("curriculum generation failed", "topics", len(topicNames), "err", err)
		s.setError(err.Error())
		return err
	}

	s.mu.Lock()
	s.curriculum = curriculum
	s.errText = ""
	s.mu.Unlock()
	s.notifyUpdate()
	return nil
}

// CurrentPlan returns the active lesson plan, or nil
func (s *Store) CurrentPlan() *model.LessonPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plan
}

// CurrentCurriculum returns the active curriculum, or nil
func (s *Store) CurrentCurriculum() *model.Curriculum {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.curriculum
}

// ErrorText returns the last generation failure, if any
func (s *Store) ErrorText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errText
}

// Clear drops the current plan and curriculum
func (s *Store) Clear() {
	s.mu.Lock()
	s.plan = nil
	s.curriculum = nil
	s.errText = ""
	s.mu.Unlock()
	s.notifyUpdate()
}

func (s *Store) setError(text string) {
	s.mu.Lock()
	s.errText = text
	s.mu.Unlock()
	s.notifyUpdate()
}

func (s *Store) notifyUpdate() {
	if s.onUpdate != nil {
		s.onUpdate()
	}
}
