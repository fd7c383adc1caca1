package notifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gdg-garage/event-registration-api/internal/models"
	"github.com/resend/resend-go/v2"
)

func submission() (models.Submission, models.SubmissionResult) {
	sub := models.Submission{
		Event:         "Satsang",
		ContactEmail:  "a@x.com",
		ContactNumber: "999",
		Participants: []models.Participant{
			{Name: "Ravi", AttendingDates: []string{"2025-01-01", "2025-01-02"}},
			{Name: "Sita"},
		},
	}
	res := models.SubmissionResult{
		SubmissionID: "sub-1",
		Event:        "Satsang",
		Total:        2,
		Saved:        1,
		Participants: []models.ParticipantOutcome{
			{Name: "Ravi", Saved: true, PreferencesSaved: 2},
			{Name: "Sita", Error: "insert registrant: boom"},
		},
	}
	return sub, res
}

func TestFormatSubmission(t *testing.T) {
	sub, res := submission()

	msg := FormatSubmission(sub, res)

	for _, want := range []string{"Partially Saved", "Satsang", "a@x.com / 999", "1 of 2", "✅ Ravi (2 dates)", "❌ Sita"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected message to contain %q, got:\n%s", want, msg)
		}
	}
}

func TestDiscordNotifier_NotConfigured(t *testing.T) {
	sub, res := submission()

	if err := NewDiscordNotifier(nil, "chan").NotifySubmission(context.Background(), sub, res); err == nil {
		t.Error("expected an error without a session")
	}
	if _, err := NewDiscordNotifierFromToken("", "chan"); err == nil {
		t.Error("expected an error without a token")
	}
	if _, err := NewDiscordNotifierFromToken("token", ""); err == nil {
		t.Error("expected an error without a channel")
	}
}

func TestRenderConfirmation(t *testing.T) {
	sub, res := submission()

	subject, html, err := RenderConfirmation(sub, res)
	if err != nil {
		t.Fatalf("RenderConfirmation failed: %v", err)
	}

	if subject != "Your registration for Satsang" {
		t.Errorf("unexpected subject %q", subject)
	}
	for _, want := range []string{"<h1>", "Only 1 of 2", "<strong>Ravi</strong>", "2025-01-01, 2025-01-02", "<code>sub-1</code>"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected body to contain %q, got:\n%s", want, html)
		}
	}
	if strings.Contains(html, "Sita") {
		t.Error("participants that were not saved must not be listed")
	}
}

type fakeSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &resend.SendEmailResponse{Id: "msg-1"}, nil
}

func TestEmailNotifier(t *testing.T) {
	sub, res := submission()
	sender := &fakeSender{}
	n := NewEmailNotifier(sender, "events@example.com")

	if err := n.NotifySubmission(context.Background(), sub, res); err != nil {
		t.Fatalf("NotifySubmission failed: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	mail := sender.sent[0]
	if mail.From != "events@example.com" || len(mail.To) != 1 || mail.To[0] != "a@x.com" {
		t.Errorf("unexpected envelope %+v", mail)
	}

	// Nothing saved, nothing to confirm.
	res.Saved = 0
	if err := n.NotifySubmission(context.Background(), sub, res); err != nil {
		t.Fatalf("NotifySubmission failed: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Errorf("expected no email for a failed submission, got %d", len(sender.sent))
	}
}

func TestEmailNotifier_SendError(t *testing.T) {
	sub, res := submission()
	n := NewEmailNotifier(&fakeSender{err: errors.New("rate limited")}, "events@example.com")

	if err := n.NotifySubmission(context.Background(), sub, res); err == nil {
		t.Error("expected the send error to be returned")
	}
}

type countingNotifier struct {
	calls int
	err   error
}

func (c *countingNotifier) NotifySubmission(ctx context.Context, sub models.Submission, res models.SubmissionResult) error {
	c.calls++
	return c.err
}

func TestMulti(t *testing.T) {
	sub, res := submission()
	ok := &countingNotifier{}
	failing := &countingNotifier{err: errors.New("down")}

	err := Multi{ok, nil, failing}.NotifySubmission(context.Background(), sub, res)

	if err == nil {
		t.Error("expected the failing notifier's error")
	}
	if ok.calls != 1 || failing.calls != 1 {
		t.Errorf("expected every notifier to be called once, got %d and %d", ok.calls, failing.calls)
	}
}
