package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-wellness-backend/internal/domain"
	"go-wellness-backend/internal/usecase"
	"go-wellness-backend/pkg/email"
	"go-wellness-backend/pkg/i18n"
	"go-wellness-backend/pkg/validation"
)

const practitionerEmail = "praticienne@sophro-shiatsu.fr"

// Mock Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg *email.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// Mock Repository
type MockSubmissionRepo struct {
	mock.Mock
}

func (m *MockSubmissionRepo) Store(ctx context.Context, sub *domain.StoredSubmission) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *MockSubmissionRepo) List(ctx context.Context, limit int) ([]domain.StoredSubmission, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoredSubmission), args.Error(1)
}

func newUsecase(t *testing.T, sender email.Sender, repo domain.SubmissionRepository) domain.ContactUsecase {
	t.Helper()
	dict, err := i18n.Load()
	require.NoError(t, err)
	return usecase.NewContactUsecase(sender, repo, dict, usecase.ContactConfig{
		FromEmail:         "contact@sophro-shiatsu.fr",
		FromName:          "Cabinet Sophrologie & Shiatsu",
		PractitionerEmail: practitionerEmail,
	})
}

func validSubmission() *domain.ContactSubmission {
	return &domain.ContactSubmission{
		Firstname: "Marie",
		Lastname:  "Dupont",
		Email:     "marie.dupont@test.fr",
		Message:   "Bonjour, je souhaiterais prendre rendez-vous.",
		Language:  "fr",
	}
}

func toPractitioner(msg *email.Message) bool {
	return len(msg.To) == 1 && msg.To[0] == practitionerEmail
}

func toSubmitter(msg *email.Message) bool {
	return !toPractitioner(msg)
}

func TestSubmitValidation(t *testing.T) {
	sender := new(MockSender)
	uc := newUsecase(t, sender, nil)

	t.Run("message too short after trim is rejected", func(t *testing.T) {
		sub := validSubmission()
		sub.Message = "  courte   "

		_, err := uc.Submit(context.Background(), sub, "203.0.113.7")
		require.Error(t, err)

		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)
		require.Len(t, verrs, 1)
		assert.Equal(t, "message", verrs[0].Field)
		assert.Contains(t, verrs[0].Message, "10")
	})

	t.Run("missing fields report one detail each", func(t *testing.T) {
		sub := &domain.ContactSubmission{Message: "Bonjour, je souhaiterais un rendez-vous."}

		_, err := uc.Submit(context.Background(), sub, "203.0.113.7")
		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 3) // firstname, lastname, email

		fields := make([]string, len(verrs))
		for i, fe := range verrs {
			fields[i] = fe.Field
		}
		assert.Contains(t, fields, "firstname")
		assert.Contains(t, fields, "lastname")
		assert.Contains(t, fields, "email")
	})

	// No dispatch may happen for rejected payloads
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSubmitSanitization(t *testing.T) {
	sender := new(MockSender)
	var notification *email.Message
	sender.On("Send", mock.Anything, mock.MatchedBy(toPractitioner)).Run(func(args mock.Arguments) {
		notification = args.Get(1).(*email.Message)
	}).Return(nil)
	sender.On("Send", mock.Anything, mock.MatchedBy(toSubmitter)).Return(nil)

	uc := newUsecase(t, sender, nil)

	sub := validSubmission()
	sub.Email = " Marie.Dupont@Test.FR "
	sub.Firstname = "  Marie  "

	_, err := uc.Submit(context.Background(), sub, "203.0.113.7")
	require.NoError(t, err)

	// Server-side trim + lowercase, regardless of what the client sent
	require.NotNil(t, notification)
	assert.Equal(t, "marie.dupont@test.fr", notification.ReplyTo)
	assert.Contains(t, notification.Subject, "Marie Dupont")
	assert.NotContains(t, notification.Subject, "  Marie")
}

func TestSubmitDualDispatch(t *testing.T) {
	t.Run("confirmation failure is tolerated", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.MatchedBy(toPractitioner)).Return(nil)
		sender.On("Send", mock.Anything, mock.MatchedBy(toSubmitter)).Return(errors.New("mailbox full"))

		uc := newUsecase(t, sender, nil)

		receipt, err := uc.Submit(context.Background(), validSubmission(), "203.0.113.7")
		require.NoError(t, err)
		require.NotNil(t, receipt)
		assert.NotEmpty(t, receipt.Message)
		assert.NotEmpty(t, receipt.Timestamp)
	})

	t.Run("notification failure fails the submission", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.MatchedBy(toPractitioner)).Return(errors.New("provider outage"))
		sender.On("Send", mock.Anything, mock.MatchedBy(toSubmitter)).Return(nil)

		uc := newUsecase(t, sender, nil)

		_, err := uc.Submit(context.Background(), validSubmission(), "203.0.113.7")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotificationFailed)

		// The confirmation was still attempted: settle-all, not fail-fast
		sender.AssertNumberOfCalls(t, "Send", 2)
	})

	t.Run("both dispatched for a valid submission", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return(nil)

		uc := newUsecase(t, sender, nil)

		_, err := uc.Submit(context.Background(), validSubmission(), "203.0.113.7")
		require.NoError(t, err)
		sender.AssertNumberOfCalls(t, "Send", 2)
	})
}

func TestSubmitLocalization(t *testing.T) {
	capture := func(sender *MockSender) *map[string]*email.Message {
		seen := make(map[string]*email.Message)
		sender.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			msg := args.Get(1).(*email.Message)
			seen[msg.To[0]] = msg
		}).Return(nil)
		return &seen
	}

	t.Run("english confirmation for language en", func(t *testing.T) {
		sender := new(MockSender)
		seen := capture(sender)
		uc := newUsecase(t, sender, nil)

		sub := validSubmission()
		sub.Language = "en"

		_, err := uc.Submit(context.Background(), sub, "203.0.113.7")
		require.NoError(t, err)

		confirmation := (*seen)["marie.dupont@test.fr"]
		require.NotNil(t, confirmation)
		assert.Equal(t, "Your message has been received", confirmation.Subject)
	})

	t.Run("unknown language falls back to french", func(t *testing.T) {
		sender := new(MockSender)
		seen := capture(sender)
		uc := newUsecase(t, sender, nil)

		sub := validSubmission()
		sub.Language = "de"

		_, err := uc.Submit(context.Background(), sub, "203.0.113.7")
		require.NoError(t, err)

		confirmation := (*seen)["marie.dupont@test.fr"]
		require.NotNil(t, confirmation)
		assert.Equal(t, "Confirmation de votre message", confirmation.Subject)
	})

	t.Run("empty language defaults to french", func(t *testing.T) {
		sender := new(MockSender)
		seen := capture(sender)
		uc := newUsecase(t, sender, nil)

		sub := validSubmission()
		sub.Language = ""

		_, err := uc.Submit(context.Background(), sub, "203.0.113.7")
		require.NoError(t, err)

		confirmation := (*seen)["marie.dupont@test.fr"]
		require.NotNil(t, confirmation)
		assert.Equal(t, "Confirmation de votre message", confirmation.Subject)
	})
}

func TestSubmitArchiving(t *testing.T) {
	t.Run("accepted submissions are stored", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return(nil)

		repo := new(MockSubmissionRepo)
		repo.On("Store", mock.Anything, mock.MatchedBy(func(s *domain.StoredSubmission) bool {
			return s.Email == "marie.dupont@test.fr" && s.ClientIP == "203.0.113.7" && s.ID != ""
		})).Return(nil)

		uc := newUsecase(t, sender, repo)

		_, err := uc.Submit(context.Background(), validSubmission(), "203.0.113.7")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("archive failure does not fail the request", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return(nil)

		repo := new(MockSubmissionRepo)
		repo.On("Store", mock.Anything, mock.Anything).Return(errors.New("db down"))

		uc := newUsecase(t, sender, repo)

		receipt, err := uc.Submit(context.Background(), validSubmission(), "203.0.113.7")
		require.NoError(t, err)
		assert.NotNil(t, receipt)
	})

	t.Run("rejected dispatch is not archived", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.MatchedBy(toPractitioner)).Return(errors.New("outage"))
		sender.On("Send", mock.Anything, mock.MatchedBy(toSubmitter)).Return(nil)

		repo := new(MockSubmissionRepo)

		uc := newUsecase(t, sender, repo)

		_, err := uc.Submit(context.Background(), validSubmission(), "203.0.113.7")
		require.Error(t, err)
		repo.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
	})
}
