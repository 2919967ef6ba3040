package model

// Package model defines domain data structures used across the app: chat
// messages, flashcards, topic trees, lesson plans, and progress aggregates.
// Structures are designed for direct binding in a presentation layer and
// explicit state transitions.
