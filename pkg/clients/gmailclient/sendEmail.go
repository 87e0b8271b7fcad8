package gmailclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
)

// EmailInterval is the minimum gap between the start of two sends, to stay inside Gmail API rate limits
const EmailInterval = 2 * time.Second

// SendEmail sends a plain text email with the specified subject and body.
// Sends may overlap but are started at most once per EmailInterval.
func (c *Client) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := c.waitForSlot(ctx); err != nil {
		return err
	}

	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(buildMessage(c.sender, to, subject, body))),
	}

	if _, err := c.service.Users.Messages.Send(c.userID, message).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// waitForSlot reserves the next send slot and sleeps until it starts
func (c *Client) waitForSlot(ctx context.Context) error {
	c.sendMutex.Lock()
	now := time.Now()
	slot := c.nextSend
	if slot.Before(now) {
		slot = now
	}
	c.nextSend = slot.Add(EmailInterval)
	c.sendMutex.Unlock()

	wait := time.Until(slot)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("email not sent: %w", ctx.Err())
	}
}

// buildMessage formats an RFC 2822 message. From is omitted when sender is empty,
// in which case Gmail uses the authorised account.
func buildMessage(sender, to, subject, body string) string {
	var b strings.Builder
	if sender != "" {
		fmt.Fprintf(&b, "From: %s\r\n", sender)
	}
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}
