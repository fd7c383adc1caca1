package notifier

import (
	"context"
	"errors"

	"github.com/gdg-garage/event-registration-api/internal/models"
)

// Notifier is told about every stored submission. Failures are reported to
// the caller but must never change the outcome of the submission itself.
type Notifier interface {
	NotifySubmission(ctx context.Context, sub models.Submission, res models.SubmissionResult) error
}

// Multi fans a notification out to every configured notifier.
type Multi []Notifier

func (m Multi) NotifySubmission(ctx context.Context, sub models.Submission, res models.SubmissionResult) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.NotifySubmission(ctx, sub, res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
