package email

import "context"

// Message is a fully-prepared email ready for dispatch.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Sender is the minimal interface an email provider must implement.
// "Sent" means the provider accepted the message, not that the
// recipient received it.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// Recipient formats a name and address into RFC 5322 form.
func Recipient(name, address string) string {
	if name == "" {
		return address
	}
	return name + " <" + address + ">"
}
