package model

// Activity is one scheduled block inside a full lesson plan
type Activity struct {
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
}

// TopicFlowStep is one entry of the simplified lesson flow used when the
// backend returns an ordered topic sequence instead of full activities
type TopicFlowStep struct {
	Order int    `json:"order"`
	Name  string `json:"name"`
}

// LessonPlan is a generated plan for studying one topic. Plans are replaced
// wholesale on each successful generation and never partially updated.
type LessonPlan struct {
	Title              string          `json:"title"`
	Topic              string          `json:"topic,omitempty"`
	Description        string          `json:"description,omitempty"`
	DurationMinutes    int             `json:"duration_minutes,omitempty"`
	Objectives         []string        `json:"objectives,omitempty"`
	Activities         []Activity      `json:"activities,omitempty"`
	AssessmentCriteria []string        `json:"assessment_criteria,omitempty"`
	TopicFlow          []TopicFlowStep `json:"topic_flow,omitempty"`
}

// CurriculumModule wraps one lesson plan inside a curriculum
type CurriculumModule struct {
	Title string     `json:"title,omitempty"`
	Plan  LessonPlan `json:"lesson_plan"`
}

// Curriculum is an ordered sequence of modules covering several topics
type Curriculum struct {
	Title                string             `json:"title,omitempty"`
	Description          string             `json:"description,omitempty"`
	TotalDurationMinutes int                `json:"total_duration_minutes,omitempty"`
	Modules              []CurriculumModule `json:"modules"`
}
