package draft

// MaxResumeBytes is the inclusive upper bound on resume size.
const MaxResumeBytes = 10 << 20

type PersonalDetails struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	Address   string `json:"address"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

type WorkExperience struct {
	ID               string `json:"id"`
	CompanyName      string `json:"company_name"`
	JobTitle         string `json:"job_title"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date,omitempty"`
	IsCurrent        bool   `json:"is_current"`
	Responsibilities string `json:"responsibilities,omitempty"`
}

type Education struct {
	ID              string `json:"id"`
	InstitutionName string `json:"institution_name"`
	Degree          string `json:"degree"`
	FieldOfStudy    string `json:"field_of_study"`
	GraduationYear  string `json:"graduation_year"`
	GPA             string `json:"gpa,omitempty"`
}

type ResumeFile struct {
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	Content []byte `json:"-"`
}

// ApplicationDraft is the in-progress record assembled across wizard steps.
type ApplicationDraft struct {
	PersonalDetails PersonalDetails  `json:"personal_details"`
	WorkExperience  []WorkExperience `json:"work_experience"`
	Education       []Education      `json:"education"`
	Skills          []string         `json:"skills"`
	Resume          *ResumeFile      `json:"resume,omitempty"`
	CoverLetter     string           `json:"cover_letter,omitempty"`
}

// AddSkill appends a skill unless it is already present. Insertion order
// is preserved for display.
func (d *ApplicationDraft) AddSkill(skill string) {
	for _, existing := range d.Skills {
		if existing == skill {
			return
		}
	}
	d.Skills = append(d.Skills, skill)
}

func (d *ApplicationDraft) RemoveSkill(skill string) {
	filtered := d.Skills[:0]
	for _, existing := range d.Skills {
		if existing != skill {
			filtered = append(filtered, existing)
		}
	}
	d.Skills = filtered
}

// normalizeExperience drops the end date on entries still marked current.
func normalizeExperience(entries []WorkExperience) []WorkExperience {
	for i := range entries {
		if entries[i].IsCurrent {
			entries[i].EndDate = ""
		}
	}
	return entries
}

// Clone returns a copy whose collections are detached from the receiver.
// The resume content is shared; it is never mutated after upload.
func (d ApplicationDraft) Clone() ApplicationDraft {
	clone := d
	clone.WorkExperience = append([]WorkExperience(nil), d.WorkExperience...)
	clone.Education = append([]Education(nil), d.Education...)
	clone.Skills = append([]string(nil), d.Skills...)
	if d.Resume != nil {
		resume := *d.Resume
		clone.Resume = &resume
	}
	return clone
}

type SubmissionResult struct {
	Success      bool   `json:"success"`
	TrackingCode string `json:"tracking_code,omitempty"`
	Message      string `json:"message,omitempty"`
}
