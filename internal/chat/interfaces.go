package chat

import (
	"context"

	"github.com/studyloop/ai-tutor/internal/gateway"
	"github.com/studyloop/ai-tutor/internal/model"
)

// Backend is the slice of the gateway the session store needs
type Backend interface {
	Chat(ctx context.Context, text string, systemCommand bool) (*gateway.ChatReply, error)
}

// LessonSink receives lesson plans that arrive through the chat flow
type LessonSink interface {
	InstallLessonPlan(plan *model.LessonPlan)
}
