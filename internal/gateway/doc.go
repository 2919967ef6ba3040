package gateway

// Package gateway implements the HTTP+JSON client for the tutoring backend.
// It owns the wire formats: every loosely-typed reply is decoded exactly once
// here, at the boundary, into typed values (chat replies become a closed
// ChatReply variant) so the stores never inspect raw JSON themselves.
