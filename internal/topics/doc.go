package topics

// Package topics tracks uploaded study documents and the topic tree
// extracted from them, behind an explicit Empty/Loading/Success/Error
// fetch state machine.
