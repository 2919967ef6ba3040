package lesson

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/studyloop/ai-tutor/internal/gateway"
	"github.com/studyloop/ai-tutor/internal/logger"
	"github.com/studyloop/ai-tutor/internal/model"
)

// fakePlanner scripts generation replies and records requests
type fakePlanner struct {
	planReq       gateway.LessonPlanRequest
	plan          *model.LessonPlan
	planErr       error
	curriculumReq gateway.CurriculumRequest
	curriculum    *model.Curriculum
	curriculumErr error
}

func (f *fakePlanner) GenerateLessonPlan(_ context.Context, req gateway.LessonPlanRequest) (*model.LessonPlan, error) {
	f.planReq = req
	return f.plan, f.planErr
}

func (f *fakePlanner) GenerateCurriculum(_ context.Context, req gateway.CurriculumRequest) (*model.Curriculum, error) {
	f.curriculumReq = req
	return f.curriculum, f.curriculumErr
}

// fakeKnowledge serves fixed levels per topic
type fakeKnowledge struct {
	mu     sync.Mutex
	levels map[string]float64
	calls  int
}

func (f *fakeKnowledge) KnowledgeLevel(_ context.Context, topic string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.levels[topic]
}

func TestGenerateLessonPlan_FeedsKnowledgeLevel(t *testing.T) {
	planner := &fakePlanner{plan: &model.LessonPlan{Title: "Cells"}}
	knowledge := &fakeKnowledge{levels: map[string]float64{"Cells": 65}}
	store := NewStore(planner, knowledge, logger.NewNop())

	err := store.GenerateLessonPlan(context.Background(), "Cells", []string{"Membrane"}, 30)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if planner.planReq.KnowledgeLevel != 65 {
		t.Errorf("Expected knowledge level 65 in request, got %v", planner.planReq.KnowledgeLevel)
	}
	if planner.planReq.TimeAvailable != 30 || len(planner.planReq.Subtopics) != 1 {
		t.Errorf("Unexpected request: %+v", planner.planReq)
	}
	if store.CurrentPlan() == nil || store.CurrentPlan().Title != "Cells" {
		t.Errorf("Expected plan installed, got %+v", store.CurrentPlan())
	}
}

func TestGenerateLessonPlan_FailureIsNonDestructive(t *testing.T) {
	planner := &fakePlanner{plan: &model.LessonPlan{Title: "First"}}
	store := NewStore(planner, &fakeKnowledge{}, logger.NewNop())

	if err := store.GenerateLessonPlan(context.Background(), "A", nil, 20); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	planner.planErr = errors.New("generation failed")
	if err := store.GenerateLessonPlan(context.Background(), "B", nil, 20); err == nil {
		t.Fatal("Expected an error")
	}

	if store.CurrentPlan() == nil || store.CurrentPlan().Title != "First" {
		t.Error("Expected previous plan to survive a failed generation")
	}
	if store.ErrorText() == "" {
		t.Error("Expected error message to be recorded")
	}
}

func TestGenerateCurriculum_ResolvesLevelsPerTopic(t *testing.T) {
	planner := &fakePlanner{curriculum: &model.Curriculum{Title: "Bio track"}}
	knowledge := &fakeKnowledge{levels: map[string]float64{"Cells": 80, "Genetics": 30}}
	store := NewStore(planner, knowledge, logger.NewNop())

	err := store.GenerateCurriculum(context.Background(), []string{"Cells", "Genetics"}, 120)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if knowledge.calls != 2 {
		t.Errorf("Expected one lookup per topic, got %d", knowledge.calls)
	}
	req := planner.curriculumReq
	if req.KnowledgeLevels["Cells"] != 80 || req.KnowledgeLevels["Genetics"] != 30 {
		t.Errorf("Unexpected knowledge levels: %+v", req.KnowledgeLevels)
	}
	if req.TotalTimeAvailable != 120 {
		t.Errorf("Expected total time 120, got %d", req.TotalTimeAvailable)
	}
	if store.CurrentCurriculum() == nil || store.CurrentCurriculum().Title != "Bio track" {
		t.Error("Expected curriculum installed")
	}
}

func TestGenerateCurriculum_FailureKeepsPrevious(t *testing.T) {
	planner := &fakePlanner{curriculum: &model.Curriculum{Title: "Old"}}
	store := NewStore(planner, &fakeKnowledge{}, logger.NewNop())

	if err := store.GenerateCurriculum(context.Background(), []string{"A"}, 60); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	planner.curriculumErr = errors.New("nope")
	if err := store.GenerateCurriculum(context.Background(), []string{"B"}, 60); err == nil {
		t.Fatal("Expected an error")
	}

	if store.CurrentCurriculum() == nil || store.CurrentCurriculum().Title != "Old" {
		t.Error("Expected previous curriculum to survive")
	}
}

func TestInstallLessonPlan(t *testing.T) {
	store := NewStore(&fakePlanner{}, &fakeKnowledge{}, logger.NewNop())

	plan := &model.LessonPlan{Title: "From chat"}
	store.InstallLessonPlan(plan)

	if store.CurrentPlan() != plan {
		t.Error("Expected installed plan to be current")
	}
}

func TestClear(t *testing.T) {
	store := NewStore(&fakePlanner{}, &fakeKnowledge{}, logger.NewNop())
	store.InstallLessonPlan(&model.LessonPlan{Title: "X"})

	store.Clear()

	if store.CurrentPlan() != nil || store.CurrentCurriculum() != nil {
		t.Error("Expected plan and curriculum cleared")
	}
}
