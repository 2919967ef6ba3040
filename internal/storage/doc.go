package storage

// Package storage persists the pinned-card working set and the uploaded
// document history in a local SQLite database, so both survive restarts.
