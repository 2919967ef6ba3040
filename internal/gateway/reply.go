package gateway

import (
	"encoding/json"
	"strings"

	"github.com/studyloop/ai-tutor/internal/model"
)

// ReplyKind discriminates the closed set of chat reply variants
type ReplyKind string

const (
	// ReplyText is a plain narrative answer
	ReplyText ReplyKind = "text"

	// ReplyDynamicFlow is a composite interactive-teaching reply; text,
	// diagram, question and flashcards may coexist on it
	ReplyDynamicFlow ReplyKind = "dynamic_flow"

	// ReplyQuestion carries an interactive question
	ReplyQuestion ReplyKind = "question"

	// ReplyLessonPlan signals a freshly generated lesson plan
	ReplyLessonPlan ReplyKind = "lesson_plan"

	// ReplyFlashcards carries a flashcard payload passed through verbatim
	ReplyFlashcards ReplyKind = "flashcards"
)

// Diagram is a raw diagram payload as received from the backend. The source
// may still carry code fences; sanitization happens in the chat layer.
type Diagram struct {
	Source string
	Type   model.DiagramKind
}

// ChatReply is the decoded form of a chat endpoint response. Exactly one
// Kind is assigned per reply; downstream logic switches over it instead of
// re-inspecting key presence.
type ChatReply struct {
	Kind ReplyKind

	// Text is the narrative portion; always usable as a display fallback.
	Text string

	Diagram      *Diagram
	Question     *model.Question
	FlashcardSet *model.FlashcardSet

	// RawFlashcards is the canonical JSON form of a flashcards payload
	// (ReplyFlashcards only); consumers that render cards re-parse it.
	RawFlashcards string

	LessonPlan *model.LessonPlan
	// FromTopicSelection is set when the lesson plan resulted from an
	// upstream topic-selection flow and navigation should follow.
	FromTopicSelection bool
}

// DecodeChatReply classifies a raw chat response body. Classification is a
// priority cascade; the first matching branch wins:
//
//  1. not a JSON object        -> plain text
//  2. teaching_mode dynamic    -> composite dynamic-flow reply
//  3. question marker          -> question reply
//  4. lesson plan marker       -> lesson plan reply
//  5. "flashcards" key present -> flashcards passthrough
//  6. otherwise                -> plain text (with optional diagram)
//
// Branches 3, 5 and 6 additionally pick up diagram fields when present;
// branch 2 extracts its own and branch 4 carries none.
func DecodeChatReply(body []byte) *ChatReply {
	var value interface{}
	if err := json.Unmarshal(body, &value); err != nil {
		return &ChatReply{Kind: ReplyText, Text: strings.TrimSpace(string(body))}
	}

	obj, ok := value.(map[string]interface{})
	if !ok {
		return &ChatReply{Kind: ReplyText, Text: stringify(value)}
	}

	if stringField(obj, "teaching_mode") == model.TeachingModeDynamicFlow {
		reply := &ChatReply{
			Kind:    ReplyDynamicFlow,
			Text:    stringField(obj, "response"),
			Diagram: parseDiagram(obj),
		}
		if boolField(obj, "has_question") {
			reply.Question = parseQuestion(mapField(obj, "question"))
		}
		if cards, ok := obj["flashcards"]; ok {
			reply.FlashcardSet = parseFlashcardSet(obj, cards)
		}
		return reply
	}

	if boolField(obj, "has_question") {
		if q := parseQuestion(mapField(obj, "question")); q != nil {
			return &ChatReply{
				Kind:     ReplyQuestion,
				Text:     stringField(obj, "response"),
				Question: q,
				Diagram:  parseDiagram(obj),
			}
		}
	}

	if boolField(obj, "has_lesson_plan") {
		if plan := parseLessonPlan(mapField(obj, "lesson_plan")); plan != nil {
			return &ChatReply{
				Kind:               ReplyLessonPlan,
				Text:               stringField(obj, "response"),
				LessonPlan:         plan,
				FromTopicSelection: boolField(obj, "from_topic_selection"),
			}
		}
	}

	if cards, ok := obj["flashcards"]; ok {
		// Re-serializing the whole object yields canonical JSON (object keys
		// sort on marshal), which consumers re-parse for rendering.
		canonical, err := json.Marshal(obj)
		if err != nil {
			canonical = body
		}
		return &ChatReply{
			Kind:          ReplyFlashcards,
			Text:          string(canonical),
			RawFlashcards: string(canonical),
			FlashcardSet:  parseFlashcardSet(obj, cards),
			Diagram:       parseDiagram(obj),
		}
	}

	return &ChatReply{
		Kind:    ReplyText,
		Text:    stringField(obj, "response"),
		Diagram: parseDiagram(obj),
	}
}

// parseDiagram extracts the optional diagram payload fields
func parseDiagram(obj map[string]interface{}) *Diagram {
	source := stringField(obj, "mermaid_code")
	if !boolField(obj, "has_diagram") && source == "" {
		return nil
	}
	if source == "" {
		return nil
	}
	return &Diagram{
		Source: source,
		Type:   diagramKind(stringField(obj, "diagram_type")),
	}
}

func diagramKind(raw string) model.DiagramKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sequence", "sequencediagram":
		return model.DiagramSequence
	case "class", "classdiagram":
		return model.DiagramClass
	default:
		return model.DiagramFlowchart
	}
}

// parseQuestion accepts both current and older question field names
// ("prompt" vs "question", "label" vs "text")
func parseQuestion(obj map[string]interface{}) *model.Question {
	if obj == nil {
		return nil
	}

	q := &model.Question{
		Kind:   questionKind(firstString(obj, "kind", "type")),
		Title:  stringField(obj, "title"),
		Prompt: firstString(obj, "prompt", "question"),
	}
	for _, item := range sliceField(obj, "options") {
		opt, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		q.Options = append(q.Options, model.Option{
			ID:          stringField(opt, "id"),
			Label:       firstString(opt, "label", "text"),
			Description: stringField(opt, "description"),
			IsCorrect:   boolField(opt, "is_correct"),
		})
	}
	return q
}

func questionKind(raw string) model.QuestionKind {
	switch model.QuestionKind(raw) {
	case model.QuestionTopicSelection, model.QuestionMultipleChoice, model.QuestionConfirmation:
		return model.QuestionKind(raw)
	default:
		return model.QuestionGeneral
	}
}

// parseFlashcardSet builds a typed set from the "flashcards" value, reading
// set-level metadata from the enclosing object
func parseFlashcardSet(obj map[string]interface{}, cards interface{}) *model.FlashcardSet {
	data, err := json.Marshal(cards)
	if err != nil {
		return nil
	}
	var parsed []model.Flashcard
	if err := json.Unmarshal(data, &parsed); err != nil || len(parsed) == 0 {
		return nil
	}
	return &model.FlashcardSet{
		Title: stringField(obj, "title"),
		Topic: stringField(obj, "topic"),
		Cards: parsed,
	}
}

// parseLessonPlan tolerates the two duration spellings the backend has used
func parseLessonPlan(obj map[string]interface{}) *model.LessonPlan {
	if obj == nil {
		return nil
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return nil
	}
	var plan model.LessonPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil
	}
	if plan.DurationMinutes == 0 {
		plan.DurationMinutes = intField(obj, "duration")
	}
	if plan.Title == "" && plan.Topic == "" && len(plan.TopicFlow) == 0 && len(plan.Activities) == 0 {
		return nil
	}
	return &plan
}

// parseTopicsValue handles the topics payload shapes: a flat topic list, or
// a mapping keyed by document id whose values wrap a nested "topics" list.
// Anything else yields nil.
func parseTopicsValue(value interface{}) []model.Topic {
	switch v := value.(type) {
	case []interface{}:
		return decodeTopicList(v)
	case map[string]interface{}:
		for _, inner := range v {
			innerObj, ok := inner.(map[string]interface{})
			if !ok {
				continue
			}
			nested, ok := innerObj["topics"].([]interface{})
			if !ok {
				continue
			}
			if topics := decodeTopicList(nested); topics != nil {
				return topics
			}
		}
	}
	return nil
}

func decodeTopicList(items []interface{}) []model.Topic {
	if len(items) == 0 {
		return nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil
	}
	var topics []model.Topic
	if err := json.Unmarshal(data, &topics); err != nil {
		return nil
	}
	if len(topics) == 0 {
		return nil
	}
	return topics
}

// Field helpers for loosely-typed payloads. Each returns the zero value on
// missing or mistyped fields.

func stringField(obj map[string]interface{}, key string) string {
	s, _ := obj[key].(string)
	return s
}

func firstString(obj map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s := stringField(obj, key); s != "" {
			return s
		}
	}
	return ""
}

func boolField(obj map[string]interface{}, key string) bool {
	b, _ := obj[key].(bool)
	return b
}

func intField(obj map[string]interface{}, key string) int {
	f, _ := obj[key].(float64)
	return int(f)
}

func mapField(obj map[string]interface{}, key string) map[string]interface{} {
	m, _ := obj[key].(map[string]interface{})
	return m
}

func sliceField(obj map[string]interface{}, key string) []interface{} {
	s, _ := obj[key].([]interface{})
	return s
}

func stringify(value interface{}) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	data, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(data)
}
