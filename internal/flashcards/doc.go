package flashcards

// Package flashcards implements the pinned-card working set: a deduplicated
// mapping from card key to snapshot with insertion order preserved for
// display, plus optional write-through persistence.
