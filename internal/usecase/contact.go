package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-wellness-backend/internal/domain"
	"go-wellness-backend/pkg/email"
	"go-wellness-backend/pkg/i18n"
	"go-wellness-backend/pkg/logger"
	"go-wellness-backend/pkg/validation"
)

// ContactConfig carries the dispatch addresses for the contact pipeline.
type ContactConfig struct {
	FromEmail         string
	FromName          string
	PractitionerEmail string
}

type contactUsecase struct {
	sender email.Sender
	repo   domain.SubmissionRepository // nil disables archiving
	dict   *i18n.Bundle
	cfg    ContactConfig
	now    func() time.Time
}

// NewContactUsecase creates the contact form pipeline. repo may be nil when
// no database is configured; archiving is best-effort either way.
func NewContactUsecase(sender email.Sender, repo domain.SubmissionRepository, dict *i18n.Bundle, cfg ContactConfig) domain.ContactUsecase {
	return &contactUsecase{
		sender: sender,
		repo:   repo,
		dict:   dict,
		cfg:    cfg,
		now:    time.Now,
	}
}

func (uc *contactUsecase) Submit(ctx context.Context, sub *domain.ContactSubmission, clientIP string) (*domain.SubmissionReceipt, error) {
	// Server-side sanitization, independent of whatever the client sent
	sanitize(sub)

	lang := uc.dict.Resolve(sub.Language)

	if err := validation.Struct(sub, func(key string) string {
		return uc.dict.T(lang, key)
	}); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	timestamp := formatParisTimestamp(uc.now())

	notification, err := uc.buildNotification(sub, timestamp)
	if err != nil {
		return nil, err
	}
	confirmation, err := uc.buildConfirmation(sub, lang)
	if err != nil {
		return nil, err
	}

	// Fire both dispatches concurrently and let both settle. The courtesy
	// confirmation may fail without failing the request; the practitioner
	// notification may not.
	var notifyErr, confirmErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		notifyErr = uc.sender.Send(ctx, notification)
	}()
	go func() {
		defer wg.Done()
		confirmErr = uc.sender.Send(ctx, confirmation)
	}()
	wg.Wait()

	logger.L().Info("contact dispatch settled",
		"submission_id", id,
		"notification_fulfilled", notifyErr == nil,
		"confirmation_fulfilled", confirmErr == nil,
	)
	if confirmErr != nil {
		logger.L().Warn("client confirmation rejected", "submission_id", id, "error", confirmErr)
	}
	if notifyErr != nil {
		logger.L().Error("practitioner notification rejected", "submission_id", id, "error", notifyErr)
		return nil, fmt.Errorf("%w: %v", domain.ErrNotificationFailed, notifyErr)
	}

	uc.archive(ctx, id, sub, clientIP)

	return &domain.SubmissionReceipt{
		ID:        id,
		Message:   uc.dict.T(lang, "contact.success"),
		Timestamp: timestamp,
	}, nil
}

// sanitize trims every field and lowercases the email. The language
// defaults to French, the site's primary audience.
func sanitize(sub *domain.ContactSubmission) {
	sub.Firstname = strings.TrimSpace(sub.Firstname)
	sub.Lastname = strings.TrimSpace(sub.Lastname)
	sub.Email = strings.ToLower(strings.TrimSpace(sub.Email))
	sub.Message = strings.TrimSpace(sub.Message)
	sub.Language = strings.TrimSpace(sub.Language)
	if sub.Language == "" {
		sub.Language = i18n.DefaultLang
	}
}

// buildNotification prepares the practitioner alert. Reply-To points at the
// submitter so the practitioner can answer directly. The alert is always in
// the default language regardless of the visitor's.
func (uc *contactUsecase) buildNotification(sub *domain.ContactSubmission, timestamp string) (*email.Message, error) {
	t := func(key string) string { return uc.dict.T(i18n.DefaultLang, key) }

	html, err := email.RenderNotification(email.NotificationData{
		Firstname: sub.Firstname,
		Lastname:  sub.Lastname,
		Email:     sub.Email,
		Message:   sub.Message,
		Language:  sub.Language,
		Timestamp: timestamp,
		Strings: email.NotificationStrings{
			Title:         t("email.notification.title"),
			FromLabel:     t("email.notification.from_label"),
			EmailLabel:    t("email.notification.email_label"),
			MessageLabel:  t("email.notification.message_label"),
			ReceivedLabel: t("email.notification.received_label"),
			LanguageLabel: t("email.notification.language_label"),
			ReplyHint:     t("email.notification.reply_hint"),
		},
	})
	if err != nil {
		return nil, err
	}

	subject := strings.NewReplacer(
		"{firstname}", sub.Firstname,
		"{lastname}", sub.Lastname,
	).Replace(t("email.notification.subject"))

	return &email.Message{
		From:    email.Recipient(uc.cfg.FromName, uc.cfg.FromEmail),
		To:      []string{uc.cfg.PractitionerEmail},
		ReplyTo: sub.Email,
		Subject: subject,
		HTML:    html,
	}, nil
}

// buildConfirmation prepares the courtesy receipt in the visitor's language.
func (uc *contactUsecase) buildConfirmation(sub *domain.ContactSubmission, lang string) (*email.Message, error) {
	t := func(key string) string { return uc.dict.T(lang, key) }

	html, err := email.RenderConfirmation(email.ConfirmationData{
		Greeting:  strings.ReplaceAll(t("email.confirmation.greeting"), "{firstname}", sub.Firstname),
		Body:      t("email.confirmation.body"),
		Outro:     t("email.confirmation.outro"),
		Signature: t("email.confirmation.signature"),
	})
	if err != nil {
		return nil, err
	}

	return &email.Message{
		From:    email.Recipient(uc.cfg.FromName, uc.cfg.FromEmail),
		To:      []string{sub.Email},
		Subject: t("email.confirmation.subject"),
		HTML:    html,
	}, nil
}

// archive stores the submission best-effort. A storage failure never fails
// a request whose notification was already delivered.
func (uc *contactUsecase) archive(ctx context.Context, id string, sub *domain.ContactSubmission, clientIP string) {
	if uc.repo == nil {
		return
	}
	stored := &domain.StoredSubmission{
		ID:        id,
		Firstname: sub.Firstname,
		Lastname:  sub.Lastname,
		Email:     sub.Email,
		Message:   sub.Message,
		Language:  sub.Language,
		ClientIP:  clientIP,
		CreatedAt: uc.now().UTC(),
	}
	if err := uc.repo.Store(ctx, stored); err != nil {
		logger.L().Warn("failed to archive submission", "submission_id", id, "error", err)
	}
}
