package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"parkcareers/internal/common"
	"parkcareers/internal/domain/draft"
	"parkcareers/internal/wizard"
)

type Submitter interface {
	Submit(ctx context.Context, jobID string, d *draft.ApplicationDraft, captchaToken string) (*draft.SubmissionResult, error)
}

type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) error
}

// SubmissionService coordinates the one-shot handoff of a finished draft to
// the applicant-tracking backend. Duplicate submits are prevented only by
// the per-session in-flight guard; no dedup key is sent.
type SubmissionService struct {
	sessions *wizard.Store
	ats      Submitter
	captcha  CaptchaVerifier
	logger   *slog.Logger
}

func NewSubmissionService(sessions *wizard.Store, ats Submitter, captcha CaptchaVerifier, logger *slog.Logger) *SubmissionService {
	return &SubmissionService{sessions: sessions, ats: ats, captcha: captcha, logger: logger}
}

// Submit re-checks the personal and resume steps, requires a captcha token,
// and performs exactly one upstream call per invocation that passes the
// in-flight guard. The guard is cleared on every exit path.
func (s *SubmissionService) Submit(ctx context.Context, sessionID common.UUID, captchaToken string) (*wizard.Session, error) {
	captchaToken = strings.TrimSpace(captchaToken)

	var jobID string
	var snapshot draft.ApplicationDraft
	err := s.sessions.Mutate(sessionID, func(session *wizard.Session) error {
		if session.State == wizard.StateSubmitted {
			return common.NewError(common.CodeConflict, "application already submitted", nil)
		}
		if session.Submitting {
			return common.NewError(common.CodeConflict, "submission already in progress", nil)
		}
		if captchaToken == "" {
			return common.NewError(common.CodeForbidden, "Please verify that you are not a robot.", nil)
		}
		personalErrs := wizard.ValidateStep(wizard.StepPersonal, &session.Draft)
		resumeErrs := wizard.ValidateStep(wizard.StepSkillsResume, &session.Draft)
		if len(personalErrs) > 0 || len(resumeErrs) > 0 {
			merged := map[string]string{}
			for field, message := range personalErrs {
				merged[field] = message
			}
			for field, message := range resumeErrs {
				merged[field] = message
			}
			session.Errors = merged
			return common.NewValidationError("please fix the highlighted fields", merged)
		}
		session.Submitting = true
		jobID = session.JobID
		snapshot = session.Draft.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The guard must not survive any exit, a panic in dispatch included.
	defer func() {
		_ = s.sessions.Mutate(sessionID, func(session *wizard.Session) error {
			session.Submitting = false
			return nil
		})
	}()

	result, submitErr := s.dispatch(ctx, jobID, &snapshot, captchaToken)

	var out *wizard.Session
	err = s.sessions.Mutate(sessionID, func(session *wizard.Session) error {
		session.Submitting = false
		switch {
		case submitErr != nil:
			session.MarkFailed(userMessage(submitErr))
		case result.Success:
			session.MarkSubmitted(result.TrackingCode)
		default:
			session.MarkFailed(result.Message)
		}
		out = session.Clone()
		return nil
	})
	if err != nil {
		// Session expired mid-flight; nothing left to update.
		return nil, err
	}
	if submitErr != nil {
		s.logger.Warn("application submission failed", "session_id", sessionID.String(), "job_id", jobID, "error", submitErr)
		return out, submitErr
	}
	if !result.Success {
		s.logger.Warn("application submission rejected", "session_id", sessionID.String(), "job_id", jobID, "message", result.Message)
		return out, common.NewError(common.CodeValidation, result.Message, nil)
	}
	s.logger.Info("application submitted", "session_id", sessionID.String(), "job_id", jobID, "tracking_code", result.TrackingCode)
	return out, nil
}

func (s *SubmissionService) dispatch(ctx context.Context, jobID string, d *draft.ApplicationDraft, captchaToken string) (*draft.SubmissionResult, error) {
	if s.captcha != nil {
		if err := s.captcha.Verify(ctx, captchaToken); err != nil {
			return nil, err
		}
	}
	return s.ats.Submit(ctx, jobID, d, captchaToken)
}

func userMessage(err error) string {
	var appErr *common.Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "Failed to submit your application. Please try again."
}
