package models

// Status is the value of the "status" field every response carries.
type Status string

const (
	StatusSuccess        Status = "success"
	StatusPartialSuccess Status = "partial_success"
	StatusError          Status = "error"
)

// ParticipantOutcome records how the write of one participant went.
type ParticipantOutcome struct {
	Name             string `json:"name"`
	Saved            bool   `json:"saved"`
	PreferencesSaved int    `json:"preferences_saved"`
	Error            string `json:"error,omitempty"`
}

// SubmissionResult aggregates the per-participant outcomes of a submission.
type SubmissionResult struct {
	SubmissionID string               `json:"submission_id"`
	Event        string               `json:"event"`
	Total        int                  `json:"total"`
	Saved        int                  `json:"saved"`
	Participants []ParticipantOutcome `json:"participants"`
}

// Status is success when every participant was saved, partial_success when
// some were, and error when none were or there was nobody to save.
func (r SubmissionResult) Status() Status {
	switch {
	case r.Total == 0 || r.Saved == 0:
		return StatusError
	case r.Saved == r.Total:
		return StatusSuccess
	default:
		return StatusPartialSuccess
	}
}
