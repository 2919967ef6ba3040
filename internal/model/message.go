package model

import "time"

// Teaching mode tags attached to assistant/system messages
const (
	TeachingModeDynamicFlow = "dynamic_flow"
	TeachingModeSystem      = "system"
)

// DiagramKind identifies which diagram grammar a message's diagram uses
type DiagramKind string

const (
	DiagramFlowchart DiagramKind = "flowchart"
	DiagramSequence  DiagramKind = "sequence"
	DiagramClass     DiagramKind = "class"
)

// QuestionKind identifies how an interactive question should be presented
type QuestionKind string

const (
	QuestionTopicSelection QuestionKind = "topic_selection"
	QuestionMultipleChoice QuestionKind = "multiple_choice"
	QuestionConfirmation   QuestionKind = "confirmation"
	QuestionGeneral        QuestionKind = "general"
)

// Option is a single selectable answer inside a Question
type Option struct {
	ID          string
	Label       string
	Description string
	IsCorrect   bool
}

// Question is an interactive prompt embedded in a message. Options may be
// empty even for choice kinds; the presentation layer renders a fallback
// "no options" state in that case rather than failing.
type Question struct {
	Kind    QuestionKind
	Title   string
	Prompt  string
	Options []Option
}

// Message is one transcript entry. Messages are immutable once appended;
// Text is always present as a human-readable summary even when a richer
// payload (diagram, question, flashcard set) rides along.
type Message struct {
	ID         string
	Text       string
	IsFromUser bool
	CreatedAt  time.Time

	HasDiagram    bool
	DiagramSource string
	DiagramType   DiagramKind

	HasQuestion bool
	Question    *Question

	HasFlashcardSet bool
	FlashcardSet    *FlashcardSet

	// TeachingMode tags the interaction pattern that produced the message,
	// e.g. "dynamic_flow" or "system". Empty for plain exchanges.
	TeachingMode string
}
