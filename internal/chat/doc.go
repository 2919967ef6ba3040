package chat

// Package chat implements the conversation core: an append-only transcript
// store with optimistic local echo, normalization of decoded backend replies
// into transcript messages, and diagram source sanitization.
