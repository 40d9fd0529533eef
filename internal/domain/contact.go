package domain

import (
	"context"
	"errors"
	"time"
)

// ContactSubmission is the wire payload of the public contact form.
// Length constraints apply to trimmed values; the usecase sanitizes
// before validating and never trusts client-side trimming.
type ContactSubmission struct {
	Firstname string `json:"firstname" validate:"required,max=50"`
	Lastname  string `json:"lastname" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email,max=100"`
	Message   string `json:"message" validate:"required,min=10,max=1000"`
	// Language selects email copy only; it is an open set defaulting to "fr".
	Language string `json:"language"`
}

// SubmissionReceipt is returned to the caller on success.
type SubmissionReceipt struct {
	ID        string
	Message   string // localized success text
	Timestamp string // human-readable, practitioner's timezone
}

// StoredSubmission is the archived form of an accepted submission.
type StoredSubmission struct {
	ID        string    `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Language  string    `json:"language"`
	ClientIP  string    `json:"client_ip"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrNotificationFailed marks a rejected practitioner notification.
// This is the business-critical delivery: when it fails the whole
// submission fails, whatever happened to the courtesy confirmation.
var ErrNotificationFailed = errors.New("practitioner notification dispatch failed")

// ContactUsecase defines the contact form pipeline.
type ContactUsecase interface {
	// Submit sanitizes, validates, timestamps, dispatches both emails and
	// archives the submission. Returns validation.Errors for bad payloads
	// and ErrNotificationFailed when the critical dispatch was rejected.
	Submit(ctx context.Context, sub *ContactSubmission, clientIP string) (*SubmissionReceipt, error)
}

// SubmissionRepository archives accepted submissions.
type SubmissionRepository interface {
	Store(ctx context.Context, sub *StoredSubmission) error
	List(ctx context.Context, limit int) ([]StoredSubmission, error)
}
