package domain

type contextKey string

// KeyRequestID carries the per-request tracking ID through contexts.
const KeyRequestID contextKey = "request_id"
