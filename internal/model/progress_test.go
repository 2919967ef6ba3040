package model

import "testing"

func TestKnowledgeBucket(t *testing.T) {
	tests := []struct {
		level    float64
		expected string
	}{
		{0, "weak"},
		{35, "weak"},
		{39.9, "weak"},
		{40, "medium"},
		{55, "medium"},
		{69, "medium"},
		{69.9, "medium"},
		{70, "strong"},
		{85, "strong"},
		{100, "strong"},
	}

	for _, test := range tests {
		result := KnowledgeBucket(test.level)
		if result != test.expected {
			t.Errorf("KnowledgeBucket(%v) = %s, expected %s", test.level, result, test.expected)
		}
	}
}
