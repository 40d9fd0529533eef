// Package contactform is a headless controller for the site's contact
// form. It owns the field values, guards against duplicate in-flight
// submissions, and maps server responses onto a small view-state machine
// that a UI layer can render directly.
package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"
)

// State is the form's view state.
type State int

const (
	// StateEditing is the default: fields are mutable, no request in flight.
	StateEditing State = iota
	// StateSubmitting locks the fields while exactly one request is in flight.
	StateSubmitting
	// StateSubmitted means the last attempt succeeded and fields were cleared.
	StateSubmitted
	// StateFailed holds an error message; fields are retained for correction.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Field names match the wire payload.
type Field string

const (
	FieldFirstname Field = "firstname"
	FieldLastname  Field = "lastname"
	FieldEmail     Field = "email"
	FieldMessage   Field = "message"
)

var (
	// ErrSubmissionInFlight is returned when Submit is called while a
	// previous submission has not settled. No network call is made.
	ErrSubmissionInFlight = errors.New("contactform: submission already in flight")

	// ErrIncomplete is returned when the pre-flight check fails. It mirrors
	// native browser constraints only (required fields, loose email shape);
	// the server remains authoritative for the strict rules, so a form that
	// passes here can still be rejected with a 400.
	ErrIncomplete = errors.New("contactform: form is incomplete")
)

// emailPattern is deliberately loose, approximating the browser's
// type=email check rather than the server's validator.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const genericErrorMessage = "Failed to send message. Please try again."

// Form is safe for concurrent use.
type Form struct {
	mu       sync.Mutex
	endpoint string
	language string
	client   *http.Client
	fields   map[Field]string
	state    State
	errMsg   string
}

// Option configures the Form.
type Option func(*Form)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Form) {
		f.client = c
	}
}

// WithLanguage sets the language sent with the payload. It is supplied by
// the hosting page, never user-entered. Default "fr".
func WithLanguage(lang string) Option {
	return func(f *Form) {
		f.language = lang
	}
}

// New creates a form controller posting to endpoint
// (e.g. "https://example.com/api/contact").
func New(endpoint string, opts ...Option) *Form {
	f := &Form{
		endpoint: endpoint,
		language: "fr",
		client:   &http.Client{Timeout: 30 * time.Second},
		fields:   make(map[Field]string),
		state:    StateEditing,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SetField updates one field. A displayed error is cleared on any edit:
// the user is trying again. Ignored while a submission is in flight.
func (f *Form) SetField(field Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateSubmitting {
		return
	}

	f.fields[field] = value

	if f.state == StateFailed {
		f.state = StateEditing
		f.errMsg = ""
	}
}

// Value returns the current value of a field.
func (f *Form) Value(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields[field]
}

// State returns the current view state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// ErrorMessage returns the message to display in the Failed state.
func (f *Form) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// Reset returns from Submitted to an empty Editing form ("send another
// message"). No-op in any other state.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSubmitted {
		return
	}
	f.fields = make(map[Field]string)
	f.errMsg = ""
	f.state = StateEditing
}

type payload struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Language  string `json:"language"`
}

type serverResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Submit issues the one outbound request. It is guarded: a second call
// while Submitting returns ErrSubmissionInFlight without touching the
// network, and an incomplete form returns ErrIncomplete the way native
// browser validation blocks a submit. Failures keep the fields for
// correction; success clears them. No automatic retries.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if !f.completeLocked() {
		f.mu.Unlock()
		return ErrIncomplete
	}

	body := payload{
		Firstname: strings.TrimSpace(f.fields[FieldFirstname]),
		Lastname:  strings.TrimSpace(f.fields[FieldLastname]),
		Email:     strings.TrimSpace(f.fields[FieldEmail]),
		Message:   strings.TrimSpace(f.fields[FieldMessage]),
		Language:  f.language,
	}
	f.state = StateSubmitting
	f.mu.Unlock()

	var (
		success bool
		failMsg string
	)

	// Guaranteed cleanup: whatever happens below, including a panic
	// unwinding through, the form never stays locked in Submitting.
	defer func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch {
		case success:
			f.state = StateSubmitted
			f.fields = make(map[Field]string)
			f.errMsg = ""
		case failMsg != "":
			f.state = StateFailed
			f.errMsg = failMsg
		default:
			f.state = StateFailed
			f.errMsg = genericErrorMessage
		}
	}()

	raw, err := json.Marshal(body)
	if err != nil {
		failMsg = genericErrorMessage
		return fmt.Errorf("contactform: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(raw))
	if err != nil {
		failMsg = genericErrorMessage
		return fmt.Errorf("contactform: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		// Network-level rejection: surface the transport error's message
		failMsg = err.Error()
		if failMsg == "" {
			failMsg = genericErrorMessage
		}
		return fmt.Errorf("contactform: request failed: %w", err)
	}
	defer resp.Body.Close()

	// Never assume the response is well-formed
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		failMsg = fmt.Sprintf("Unexpected response from server (status %d)", resp.StatusCode)
		return errors.New(failMsg)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		failMsg = fmt.Sprintf("Unexpected response from server (status %d)", resp.StatusCode)
		return errors.New(failMsg)
	}

	var parsed serverResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		failMsg = "Response parsing failed"
		return errors.New(failMsg)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Prefer the server-supplied error over a synthesized one
		failMsg = parsed.Error
		if failMsg == "" {
			failMsg = fmt.Sprintf("Error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return errors.New(failMsg)
	}

	success = true
	return nil
}

// completeLocked mirrors the browser's native required/type=email checks.
// Caller holds f.mu.
func (f *Form) completeLocked() bool {
	for _, field := range []Field{FieldFirstname, FieldLastname, FieldEmail, FieldMessage} {
		if f.fields[field] == "" {
			return false
		}
	}
	return emailPattern.MatchString(f.fields[FieldEmail])
}
