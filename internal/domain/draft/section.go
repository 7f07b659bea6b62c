package draft

import "parkcareers/internal/common"

type Section string

const (
	SectionPersonal    Section = "personal"
	SectionExperience  Section = "experience"
	SectionEducation   Section = "education"
	SectionSkills      Section = "skills"
	SectionResume      Section = "resume"
	SectionCoverLetter Section = "cover_letter"
)

// SectionUpdate carries a wholesale replacement for exactly one draft
// section. A pointer per section instead of an untyped payload keeps the
// shape checked per section.
type SectionUpdate struct {
	Personal    *PersonalDetails
	Experience  *[]WorkExperience
	Education   *[]Education
	Skills      *[]string
	Resume      *ResumeFile
	CoverLetter *string
}

func (u SectionUpdate) section() (Section, bool) {
	var name Section
	count := 0
	if u.Personal != nil {
		name, count = SectionPersonal, count+1
	}
	if u.Experience != nil {
		name, count = SectionExperience, count+1
	}
	if u.Education != nil {
		name, count = SectionEducation, count+1
	}
	if u.Skills != nil {
		name, count = SectionSkills, count+1
	}
	if u.Resume != nil {
		name, count = SectionResume, count+1
	}
	if u.CoverLetter != nil {
		name, count = SectionCoverLetter, count+1
	}
	return name, count == 1
}

// Apply replaces the named section of the draft. Exactly one section must
// be set on the update.
func (d *ApplicationDraft) Apply(update SectionUpdate) (Section, error) {
	name, ok := update.section()
	if !ok {
		return "", common.NewValidationError("exactly one section must be provided", nil)
	}
	switch name {
	case SectionPersonal:
		d.PersonalDetails = *update.Personal
	case SectionExperience:
		d.WorkExperience = normalizeExperience(*update.Experience)
	case SectionEducation:
		d.Education = *update.Education
	case SectionSkills:
		d.Skills = nil
		for _, skill := range *update.Skills {
			d.AddSkill(skill)
		}
	case SectionResume:
		d.Resume = update.Resume
	case SectionCoverLetter:
		d.CoverLetter = *update.CoverLetter
	}
	return name, nil
}
