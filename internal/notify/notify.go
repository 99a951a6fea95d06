// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notify defines the notification port. Components that announce
// events (e.g. a newly imported resource) receive a Notifier explicitly;
// nothing discovers a messaging layer through a global registry.
package notify

import (
	"context"
	"fmt"
	"io"
)

// Message is one notification to be delivered by the messaging
// collaborator.
type Message struct {
	// Audience scopes delivery: a course id, a department id, or empty for
	// the uploader's followers.
	Audience string

	Subject string
	Body    string
}

// Notifier delivers messages. Implementations wrap the external messaging
// collaborator; delivery failure must not fail the operation that raised
// the event.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// Writer logs notifications to an io.Writer. It stands in for the real
// messaging collaborator in the CLI and in tests.
type Writer struct {
	W io.Writer
}

// Send writes the message to the underlying writer.
func (n *Writer) Send(_ context.Context, msg Message) error {
	if n.W == nil {
		return nil
	}
	_, err := fmt.Fprintf(n.W, "notify [%s] %s: %s\n", msg.Audience, msg.Subject, msg.Body)
	return err
}

// Discard drops all notifications.
type Discard struct{}

// Send does nothing.
func (Discard) Send(context.Context, Message) error { return nil }
