package gateway

import "encoding/json"

// TopicLevel is one entry of the flat topics variant of the knowledge reply
type TopicLevel struct {
	Name  string  `json:"name"`
	Level float64 `json:"level"`
}

// KnowledgeReply is the body of GET /user/{id}/knowledge. The backend sends
// either pre-bucketed weak/medium/strong lists or a flat Topics list the
// client buckets itself.
type KnowledgeReply struct {
	UserID           string       `json:"user_id"`
	AverageKnowledge float64      `json:"average_knowledge"`
	TopicsStudied    int          `json:"topics_studied"`
	WeakTopics       []string     `json:"weak_topics"`
	MediumTopics     []string     `json:"medium_topics"`
	StrongTopics     []string     `json:"strong_topics"`
	Topics           []TopicLevel `json:"topics"`
}

// Bucketed reports whether the reply already carries bucketed topic lists
func (r *KnowledgeReply) Bucketed() bool {
	return r.WeakTopics != nil || r.MediumTopics != nil || r.StrongTopics != nil
}

// TopicProgressReply is the body of GET /user/{id}/topic/{topic}
type TopicProgressReply struct {
	Name              string  `json:"name"`
	Level             float64 `json:"level"`
	LastUpdated       string  `json:"last_updated"`
	Status            string  `json:"status"`
	StudySessions     int     `json:"study_sessions"`
	QuizAttempts      int     `json:"quiz_attempts"`
	FlashcardSessions int     `json:"flashcard_sessions"`
	TotalStudyMinutes int     `json:"total_study_minutes"`
}

// InsightReply is one entry of the patterns insights list
type InsightReply struct {
	Type        string
	Value       string
	Description string
}

// PatternsReply is the decoded body of GET /user/{id}/patterns
type PatternsReply struct {
	InteractionCounts map[string]int
	StudyRegularity   string
	Insights          []InsightReply
}

// ParsePatterns decodes the patterns payload field by field. A missing or
// mistyped field falls back to its default instead of failing the payload.
func ParsePatterns(body []byte) *PatternsReply {
	reply := &PatternsReply{
		InteractionCounts: map[string]int{},
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return reply
	}

	for key, value := range mapField(raw, "interaction_counts") {
		if count, ok := value.(float64); ok {
			reply.InteractionCounts[key] = int(count)
		}
	}
	reply.StudyRegularity = stringField(raw, "study_regularity")

	for _, item := range sliceField(raw, "insights") {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		reply.Insights = append(reply.Insights, InsightReply{
			Type:        stringField(entry, "type"),
			Value:       stringify(entry["value"]),
			Description: stringField(entry, "description"),
		})
	}
	return reply
}

// Interaction types accepted by POST /user/track
const (
	TrackQuizResult      = "quiz_result"
	TrackStudySession    = "study_session"
	TrackFlashcardReview = "flashcard_review"
	TrackTopicView       = "topic_view"
)

// TrackEvent is the body of POST /user/track; only the fields relevant to
// the interaction type are populated.
type TrackEvent struct {
	InteractionType string  `json:"interaction_type"`
	UserID          string  `json:"user_id,omitempty"`
	Topic           string  `json:"topic,omitempty"`
	Score           float64 `json:"score,omitempty"`
	TotalQuestions  int     `json:"total_questions,omitempty"`
	CorrectAnswers  int     `json:"correct_answers,omitempty"`
	DurationMinutes int     `json:"duration_minutes,omitempty"`
	CardsReviewed   int     `json:"cards_reviewed,omitempty"`
}
