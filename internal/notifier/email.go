package notifier

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/gdg-garage/event-registration-api/internal/models"
	"github.com/resend/resend-go/v2"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// EmailSender is the part of the Resend client the notifier uses.
type EmailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// EmailNotifier sends the booking contact a confirmation of what was saved.
type EmailNotifier struct {
	emails EmailSender
	from   string
}

func NewEmailNotifier(emails EmailSender, from string) *EmailNotifier {
	return &EmailNotifier{emails: emails, from: from}
}

// NewResendNotifier creates an EmailNotifier backed by the Resend API.
func NewResendNotifier(apiKey, from string) (*EmailNotifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is empty")
	}
	if from == "" {
		return nil, fmt.Errorf("email from address is empty")
	}
	return NewEmailNotifier(resend.NewClient(apiKey).Emails, from), nil
}

func (n *EmailNotifier) NotifySubmission(ctx context.Context, sub models.Submission, res models.SubmissionResult) error {
	if res.Saved == 0 || sub.ContactEmail == "" {
		return nil
	}

	subject, html, err := RenderConfirmation(sub, res)
	if err != nil {
		return err
	}

	sent, err := n.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{sub.ContactEmail},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		slog.Error("confirmation email failed", "submission_id", res.SubmissionID, "to", sub.ContactEmail, "error", err)
		return fmt.Errorf("send confirmation email: %w", err)
	}

	slog.Info("confirmation email sent", "submission_id", res.SubmissionID, "message_id", sent.Id)
	return nil
}

var md = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var confirmationTemplate = template.Must(template.New("confirmation").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`# Registration received for {{.Event}}

{{if .Partial}}Only {{.Saved}} of {{.Total}} participants could be saved. Please contact the organisers about the others.{{else}}All {{.Total}} participants are registered.{{end}}

Reference: ` + "`{{.SubmissionID}}`" + `

{{range .Participants}}{{if .Saved}}- **{{.Name}}**{{with index $.Dates .Name}}: {{join . ", "}}{{end}}
{{end}}{{end}}`))

// RenderConfirmation returns the subject and HTML body of the confirmation
// mail for a submission.
func RenderConfirmation(sub models.Submission, res models.SubmissionResult) (string, string, error) {
	dates := make(map[string][]string, len(sub.Participants))
	for _, p := range sub.Participants {
		dates[p.Name] = p.AttendingDates
	}

	data := struct {
		models.SubmissionResult
		Partial bool
		Dates   map[string][]string
	}{
		SubmissionResult: res,
		Partial:          res.Status() == models.StatusPartialSuccess,
		Dates:            dates,
	}

	var markdown bytes.Buffer
	if err := confirmationTemplate.Execute(&markdown, data); err != nil {
		return "", "", fmt.Errorf("render confirmation: %w", err)
	}

	var html bytes.Buffer
	if err := md.Convert(markdown.Bytes(), &html); err != nil {
		return "", "", fmt.Errorf("convert confirmation: %w", err)
	}

	return fmt.Sprintf("Your registration for %s", sub.Event), html.String(), nil
}
