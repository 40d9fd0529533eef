package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// notificationTemplate renders the practitioner alert with every
// submission field.
const notificationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Strings.Title}}</title>
    <style>
        body { font-family: Georgia, serif; line-height: 1.6; color: #3d3d3d; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #7d9b76; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #faf8f4; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #5a6b55; }
        .value { margin-top: 5px; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #7d9b76; margin-top: 10px; white-space: pre-wrap; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Strings.Title}}</h1>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">{{.Strings.FromLabel}}:</div>
                <div class="value">{{.Firstname}} {{.Lastname}}</div>
            </div>
            <div class="field">
                <div class="label">{{.Strings.EmailLabel}}:</div>
                <div class="value">{{.Email}}</div>
            </div>
            <div class="field">
                <div class="label">{{.Strings.MessageLabel}}:</div>
                <div class="message-box">{{.Message}}</div>
            </div>
            <div class="field">
                <div class="label">{{.Strings.ReceivedLabel}}:</div>
                <div class="value">{{.Timestamp}}</div>
            </div>
            <div class="field">
                <div class="label">{{.Strings.LanguageLabel}}:</div>
                <div class="value">{{.Language}}</div>
            </div>
        </div>
        <div class="footer">
            <p>{{.Strings.ReplyHint}}</p>
        </div>
    </div>
</body>
</html>`

// confirmationTemplate renders the courtesy receipt for the submitter.
const confirmationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Georgia, serif; line-height: 1.6; color: #3d3d3d; }
        .container { max-width: 600px; margin: 0 auto; padding: 30px 20px; }
        .signature { margin-top: 30px; color: #5a6b55; }
    </style>
</head>
<body>
    <div class="container">
        <p>{{.Greeting}}</p>
        <p>{{.Body}}</p>
        <p>{{.Outro}}</p>
        <p class="signature">{{.Signature}}</p>
    </div>
</body>
</html>`

var (
	notificationTmpl = template.Must(template.New("notification").Parse(notificationTemplate))
	confirmationTmpl = template.Must(template.New("confirmation").Parse(confirmationTemplate))
)

// NotificationStrings carries the localized labels for the practitioner
// alert. The practitioner reads French regardless of the visitor's
// language, but the copy still comes from the dictionary.
type NotificationStrings struct {
	Title         string
	FromLabel     string
	EmailLabel    string
	MessageLabel  string
	ReceivedLabel string
	LanguageLabel string
	ReplyHint     string
}

// NotificationData holds everything the practitioner alert displays.
type NotificationData struct {
	Firstname string
	Lastname  string
	Email     string
	Message   string
	Language  string
	Timestamp string
	Strings   NotificationStrings
}

// ConfirmationData holds the localized copy for the submitter receipt.
type ConfirmationData struct {
	Greeting  string
	Body      string
	Outro     string
	Signature string
}

// RenderNotification produces the practitioner alert HTML body.
func RenderNotification(data NotificationData) (string, error) {
	var buf bytes.Buffer
	if err := notificationTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("email: render notification: %w", err)
	}
	return buf.String(), nil
}

// RenderConfirmation produces the submitter receipt HTML body.
func RenderConfirmation(data ConfirmationData) (string, error) {
	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("email: render confirmation: %w", err)
	}
	return buf.String(), nil
}
