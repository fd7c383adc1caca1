package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdg-garage/event-registration-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmitRegistration writes every participant of sub independently. A
// participant that fails does not stop the others; the returned result
// carries one outcome per participant and its Status tells success, partial
// success and failure apart.
func (s *Store) SubmitRegistration(ctx context.Context, sub models.Submission) models.SubmissionResult {
	res := models.SubmissionResult{
		SubmissionID: uuid.NewString(),
		Event:        sub.Event,
		Total:        len(sub.Participants),
		Participants: make([]models.ParticipantOutcome, 0, len(sub.Participants)),
	}

	if sub.TotalParticipants != 0 && sub.TotalParticipants != len(sub.Participants) {
		slog.Warn("participant count mismatch",
			"submission_id", res.SubmissionID,
			"reported", sub.TotalParticipants,
			"received", len(sub.Participants),
		)
	}

	for _, p := range sub.Participants {
		outcome := s.saveParticipant(ctx, sub, p, res.SubmissionID)
		if outcome.Saved {
			res.Saved++
		}
		res.Participants = append(res.Participants, outcome)
	}

	return res
}

func (s *Store) saveParticipant(ctx context.Context, sub models.Submission, p models.Participant, submissionID string) models.ParticipantOutcome {
	outcome := models.ParticipantOutcome{Name: p.Name}
	db := s.db.WithContext(ctx)

	if s.atomicWrites {
		var saved int
		err := db.Transaction(func(tx *gorm.DB) error {
			registrant := sub.Registrant(p, submissionID)
			if err := tx.Create(&registrant).Error; err != nil {
				return fmt.Errorf("insert registrant: %w", err)
			}
			n, err := insertPreferences(tx, sub, p)
			if err != nil {
				return err
			}
			saved = n
			return nil
		})
		if err != nil {
			slog.Error("participant not saved", "submission_id", submissionID, "name", p.Name, "error", err)
			outcome.Error = err.Error()
			return outcome
		}
		outcome.Saved = true
		outcome.PreferencesSaved = saved
		return outcome
	}

	registrant := sub.Registrant(p, submissionID)
	if err := db.Create(&registrant).Error; err != nil {
		slog.Error("participant not saved", "submission_id", submissionID, "name", p.Name, "error", err)
		outcome.Error = fmt.Errorf("insert registrant: %w", err).Error()
		return outcome
	}
	outcome.Saved = true

	err := db.Transaction(func(tx *gorm.DB) error {
		n, err := insertPreferences(tx, sub, p)
		outcome.PreferencesSaved = n
		return err
	})
	if err != nil {
		// The registrant row stays without preferences.
		slog.Error("date preferences not saved", "submission_id", submissionID, "name", p.Name, "error", err)
		outcome.PreferencesSaved = 0
		outcome.Error = err.Error()
	}
	return outcome
}

func insertPreferences(tx *gorm.DB, sub models.Submission, p models.Participant) (int, error) {
	if len(p.DatePreferences) == 0 {
		return 0, nil
	}
	prefs := make([]models.DatePreference, 0, len(p.DatePreferences))
	for _, d := range p.DatePreferences {
		prefs = append(prefs, sub.DatePreference(p, d))
	}
	if err := tx.Create(&prefs).Error; err != nil {
		return 0, fmt.Errorf("insert date preferences: %w", err)
	}
	return len(prefs), nil
}
