package model

import "time"

// Topic is one node of the topic tree extracted from an uploaded document.
// Subtopics nest to arbitrary depth.
type Topic struct {
	Title     string  `json:"title"`
	Content   string  `json:"content,omitempty"`
	Subtopics []Topic `json:"subtopics,omitempty"`
}

// DocumentInfo records one successful document upload
type DocumentInfo struct {
	ID         string
	Name       string
	UploadedAt time.Time
}

// FlattenTopics walks a topic tree depth-first and returns every title in
// order. Used when an operation needs the flat name list (e.g. curriculum
// generation over all extracted topics).
func FlattenTopics(topics []Topic) []string {
	var names []string
	var walk func([]Topic)
	walk = func(ts []Topic) {
		for _, t := range ts {
			if t.Title != "" {
				names = append(names, t.Title)
			}
			walk(t.Subtopics)
		}
	}
	walk(topics)
	return names
}
