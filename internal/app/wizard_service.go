package app

import (
	"parkcareers/internal/common"
	"parkcareers/internal/domain/draft"
	"parkcareers/internal/wizard"
)

// WizardService mediates all access to wizard sessions. The store
// serializes mutations so step transitions stay strictly sequential per
// session; callers only ever see detached snapshots.
type WizardService struct {
	sessions *wizard.Store
}

func NewWizardService(sessions *wizard.Store) *WizardService {
	return &WizardService{sessions: sessions}
}

func (s *WizardService) Open(jobID string) *wizard.Session {
	return s.sessions.Create(jobID)
}

func (s *WizardService) Get(id common.UUID) (*wizard.Session, error) {
	return s.sessions.Get(id)
}

func (s *WizardService) Close(id common.UUID) {
	s.sessions.Delete(id)
}

func (s *WizardService) Advance(id common.UUID) (*wizard.Session, error) {
	var snapshot *wizard.Session
	err := s.sessions.Mutate(id, func(session *wizard.Session) error {
		advanceErr := session.Advance()
		snapshot = session.Clone()
		return advanceErr
	})
	if err != nil {
		if snapshot != nil && common.Is(err, common.CodeValidation) {
			return snapshot, err
		}
		return nil, err
	}
	return snapshot, nil
}

func (s *WizardService) Retreat(id common.UUID) (*wizard.Session, error) {
	var snapshot *wizard.Session
	err := s.sessions.Mutate(id, func(session *wizard.Session) error {
		session.Retreat()
		snapshot = session.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *WizardService) UpdateSection(id common.UUID, update draft.SectionUpdate) (*wizard.Session, error) {
	var snapshot *wizard.Session
	err := s.sessions.Mutate(id, func(session *wizard.Session) error {
		if _, err := session.Apply(update); err != nil {
			return err
		}
		snapshot = session.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}
