package lesson

// Package lesson holds the most recently generated lesson plan and
// curriculum, replaced wholesale on each generation and fed by either an
// explicit generation request or a plan arriving through the chat flow.
