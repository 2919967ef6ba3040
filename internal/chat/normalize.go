package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/studyloop/ai-tutor/internal/gateway"
	"github.com/studyloop/ai-tutor/internal/model"
)

// emptyReplyApology stands in when a reply carries no usable narrative
const emptyReplyApology = "I'm sorry, I don't have a good answer for that right now."

// lessonPlanAck acknowledges a lesson plan installed from the chat flow
const lessonPlanAck = "I've put together a lesson plan for you. Open the lesson view to start studying."

// normalize converts a decoded reply into exactly one assistant message,
// applying side effects (lesson plan installation, navigation hook) where
// the variant calls for them.
func (s *Store) normalize(reply *gateway.ChatReply) model.Message {
	msg := model.Message{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}

	switch reply.Kind {
	case gateway.ReplyDynamicFlow:
		msg.TeachingMode = model.TeachingModeDynamicFlow
		msg.Text = reply.Text
		if msg.Text == "" {
			msg.Text = emptyReplyApology
		}
		attachDiagram(&msg, reply.Diagram)
		if reply.Question != nil {
			msg.HasQuestion = true
			msg.Question = reply.Question
		}
		if reply.FlashcardSet != nil {
			msg.HasFlashcardSet = true
			msg.FlashcardSet = reply.FlashcardSet
		}

	case gateway.ReplyQuestion:
		msg.HasQuestion = true
		msg.Question = reply.Question
		msg.Text = reply.Text
		if msg.Text == "" {
			msg.Text = reply.Question.Prompt
		}
		attachDiagram(&msg, reply.Diagram)

	case gateway.ReplyLessonPlan:
		if s.lessons != nil {
			s.lessons.InstallLessonPlan(reply.LessonPlan)
		}
		if reply.FromTopicSelection && s.onLessonPlanFromSelection != nil {
			s.onLessonPlanFromSelection()
		}
		msg.Text = reply.Text
		if msg.Text == "" {
			msg.Text = lessonPlanAck
		}

	case gateway.ReplyFlashcards:
		// Text carries the canonical JSON; the rendering layer re-parses it.
		msg.Text = reply.RawFlashcards
		if reply.FlashcardSet != nil {
			msg.HasFlashcardSet = true
			msg.FlashcardSet = reply.FlashcardSet
		}
		attachDiagram(&msg, reply.Diagram)

	default:
		msg.Text = reply.Text
		if msg.Text == "" {
			msg.Text = emptyReplyApology
		}
		attachDiagram(&msg, reply.Diagram)
	}

	return msg
}

func attachDiagram(msg *model.Message, diagram *gateway.Diagram) {
	if diagram == nil {
		return
	}
	msg.HasDiagram = true
	msg.DiagramType = diagram.Type
	msg.DiagramSource = SanitizeDiagram(diagram.Source, diagram.Type)
}
