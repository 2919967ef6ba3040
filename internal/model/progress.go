package model

// Knowledge level buckets. Levels are 0-100 scores; boundaries are exact
// and inclusive: <40 weak, 40-69 medium, >=70 strong.
const (
	LevelMediumFloor = 40
	LevelStrongFloor = 70
)

// KnowledgeBucket classifies a 0-100 knowledge level
func KnowledgeBucket(level float64) string {
	switch {
	case level >= LevelStrongFloor:
		return "strong"
	case level >= LevelMediumFloor:
		return "medium"
	default:
		return "weak"
	}
}

// UserProgress is the per-user knowledge summary computed by the backend
// (or bucketed client-side from a flat topic list)
type UserProgress struct {
	UserID           string
	AverageKnowledge float64
	TopicsStudied    int
	WeakTopics       []string
	MediumTopics     []string
	StrongTopics     []string
}

// TopicProgress mirrors the server-side aggregate for a single topic
type TopicProgress struct {
	Name              string
	Level             float64
	LastUpdated       string
	Status            string
	StudySessions     int
	QuizAttempts      int
	FlashcardSessions int
	TotalStudyMinutes int
}

// Insight is one server-generated observation about study behaviour
type Insight struct {
	Type        string
	Value       string
	Description string
}

// LearningPattern mirrors the server-side interaction analysis. Every field
// has a usable zero/default so a partially populated payload still renders.
type LearningPattern struct {
	InteractionCounts map[string]int
	StudyRegularity   string
	Insights          []Insight
}
