package ui

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ContactInput is one submission of the contact form. It lives for a single
// submit and is never stored.
type ContactInput struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Subject string `form:"subject"`
	Message string `form:"message"`
}

// ValidationError lists the form fields that were left empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Has reports whether field was reported missing.
func (e *ValidationError) Has(field string) bool {
	for _, m := range e.Missing {
		if m == field {
			return true
		}
	}
	return false
}

// Validate returns a *ValidationError when any field is blank.
func (in ContactInput) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", in.Name},
		{"email", in.Email},
		{"subject", in.Subject},
		{"message", in.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// ComposeAction is the mailto directive handed to the visitor's mail client.
type ComposeAction string

func (a ComposeAction) String() string { return string(a) }

// Body formats the draft body: sender name, sender email, a blank line,
// then the message verbatim.
func Body(in ContactInput) string {
	return fmt.Sprintf("From: %s\nEmail: %s\n\n%s", in.Name, in.Email, in.Message)
}

// BuildMailAction turns a validated submission into a mailto directive for
// recipient. It performs no I/O.
func BuildMailAction(recipient string, in ContactInput) ComposeAction {
	return ComposeAction("mailto:" + recipient +
		"?subject=" + encodeComponent(in.Subject) +
		"&body=" + encodeComponent(Body(in)))
}

// componentUnescaper undoes what url.QueryEscape does beyond
// encodeURIComponent: '+' for spaces and escaping of !'()*.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent escapes exactly like the browser's encodeURIComponent.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// ExternalAction hands a directive to the host. There is no return channel.
type ExternalAction interface {
	Dispatch(action ComposeAction)
}

// Notification is a transient, auto-dismissing message for the visitor.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Notifier surfaces notifications.
type Notifier interface {
	Notify(n Notification)
}

// OpeningMailClient is shown after every dispatched compose action.
var OpeningMailClient = Notification{
	Title:       "Opening email client...",
	Description: "Your message will be sent via your default email app.",
}

// ErrNoRecipient is returned by NewContact when no address is configured.
var ErrNoRecipient = errors.New("contact: recipient address is empty")

// Contact wires the builder to its ports.
type Contact struct {
	recipient string
	action    ExternalAction
	notifier  Notifier
}

func NewContact(recipient string, action ExternalAction, notifier Notifier) (*Contact, error) {
	if strings.TrimSpace(recipient) == "" {
		return nil, ErrNoRecipient
	}
	return &Contact{recipient: recipient, action: action, notifier: notifier}, nil
}

// Recipient is the fixed address every draft is addressed to.
func (c *Contact) Recipient() string { return c.recipient }

// Submit validates in and, when every field is present, dispatches the
// compose action and fires the notification. A validation failure reaches
// neither port.
func (c *Contact) Submit(in ContactInput) (ComposeAction, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	action := BuildMailAction(c.recipient, in)
	if c.action != nil {
		c.action.Dispatch(action)
	}
	if c.notifier != nil {
		c.notifier.Notify(OpeningMailClient)
	}
	return action, nil
}
