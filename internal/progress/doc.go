package progress

// Package progress mirrors the server-computed knowledge and learning
// aggregates, with client-side level bucketing, a per-topic session cache,
// and interaction tracking calls.
