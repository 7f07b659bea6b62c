package wizard

import (
	"time"

	"parkcareers/internal/common"
	"parkcareers/internal/domain/draft"
)

const (
	StepPersonal     = 1
	StepExperience   = 2
	StepEducation    = 3
	StepSkillsResume = 4
	StepReview       = 5
)

type State string

const (
	StateInProgress State = "in_progress"
	StateSubmitted  State = "submitted"
)

// submitErrorKey is the reserved error-map key for submission failures, kept
// apart from per-field keys.
const submitErrorKey = "submit"

// Session owns one wizard instance: the accumulated draft, the step cursor,
// and the last validation result. A session is mutated only by its single
// owning caller; the store serializes access.
type Session struct {
	ID           common.UUID            `json:"id"`
	JobID        string                 `json:"job_id"`
	Draft        draft.ApplicationDraft `json:"draft"`
	Step         int                    `json:"step"`
	Errors       map[string]string      `json:"errors"`
	State        State                  `json:"state"`
	TrackingCode string                 `json:"tracking_code,omitempty"`
	Submitting   bool                   `json:"submitting"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

func NewSession(jobID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        common.NewUUID(),
		JobID:     jobID,
		Step:      StepPersonal,
		Errors:    map[string]string{},
		State:     StateInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Advance validates the current step only. A failed validation refuses the
// transition and replaces the error map; a passing one clears it and moves
// the cursor forward, capped at Review.
func (s *Session) Advance() error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	errs := ValidateStep(s.Step, &s.Draft)
	s.Errors = errs
	if len(errs) > 0 {
		return common.NewValidationError("please fix the highlighted fields", errs)
	}
	if s.Step < StepReview {
		s.Step++
	}
	s.touch()
	return nil
}

// Retreat is never blocked and never validates. It clears any submit-scoped
// error but leaves field errors for the next Advance to replace.
func (s *Session) Retreat() {
	if s.Step > StepPersonal {
		s.Step--
	}
	delete(s.Errors, submitErrorKey)
	s.touch()
}

// Apply replaces one draft section wholesale. Field errors stay until the
// next validation pass; a stale submit error is dropped.
func (s *Session) Apply(update draft.SectionUpdate) (draft.Section, error) {
	if err := s.ensureEditable(); err != nil {
		return "", err
	}
	section, err := s.Draft.Apply(update)
	if err != nil {
		return "", err
	}
	delete(s.Errors, submitErrorKey)
	s.touch()
	return section, nil
}

// MarkSubmitted consumes the session: the draft is no longer editable and
// the snapshot carries only the confirmation.
func (s *Session) MarkSubmitted(trackingCode string) {
	s.State = StateSubmitted
	s.TrackingCode = trackingCode
	s.Errors = map[string]string{}
	s.touch()
}

// MarkFailed records a submit-scoped error and keeps the cursor on Review so
// the applicant can correct and retry.
func (s *Session) MarkFailed(message string) {
	s.Errors[submitErrorKey] = message
	s.Step = StepReview
	s.touch()
}

func (s *Session) SubmitError() (string, bool) {
	message, ok := s.Errors[submitErrorKey]
	return message, ok
}

func (s *Session) ensureEditable() error {
	if s.State == StateSubmitted {
		return common.NewError(common.CodeConflict, "application already submitted", nil)
	}
	return nil
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}

// Clone returns a deep copy that is safe to read and encode outside the
// store lock.
func (s *Session) Clone() *Session {
	clone := *s
	clone.Draft = s.Draft.Clone()
	clone.Errors = make(map[string]string, len(s.Errors))
	for field, message := range s.Errors {
		clone.Errors[field] = message
	}
	return &clone
}
