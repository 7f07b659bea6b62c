package handlers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"parkcareers/internal/app"
	"parkcareers/internal/common"
	"parkcareers/internal/domain/draft"
	"parkcareers/internal/http/metrics"
	"parkcareers/internal/http/middleware"
	"parkcareers/internal/http/response"
)

type WizardHandler struct {
	wizards        *app.WizardService
	submissions    *app.SubmissionService
	limiter        middleware.Limiter
	collector      *metrics.Collector
	maxResumeBytes int64
}

func NewWizardHandler(wizards *app.WizardService, submissions *app.SubmissionService, limiter middleware.Limiter, collector *metrics.Collector, maxResumeBytes int64) *WizardHandler {
	if maxResumeBytes <= 0 {
		maxResumeBytes = draft.MaxResumeBytes
	}
	return &WizardHandler{
		wizards:        wizards,
		submissions:    submissions,
		limiter:        limiter,
		collector:      collector,
		maxResumeBytes: maxResumeBytes,
	}
}

type openRequest struct {
	JobID string `json:"job_id"`
}

func (h *WizardHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.JobID) == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"job_id": "job_id is required"}))
		return
	}
	session := h.wizards.Open(strings.TrimSpace(req.JobID))
	response.JSON(w, http.StatusCreated, session)
}

func (h *WizardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := sessionIDFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	session, err := h.wizards.Get(id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, session)
}

func (h *WizardHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, err := sessionIDFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	h.wizards.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *WizardHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, err := sessionIDFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	session, err := h.wizards.Advance(id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, session)
}

func (h *WizardHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	id, err := sessionIDFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	session, err := h.wizards.Retreat(id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, session)
}

func (h *WizardHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	id, err := sessionIDFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	section := draft.Section(pathSegment(r, 3))
	update, err := h.decodeSection(r, section)
	if err != nil {
		response.Error(w, err)
		return
	}
	session, err := h.wizards.UpdateSection(id, update)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, session)
}

func (h *WizardHandler) decodeSection(r *http.Request, section draft.Section) (draft.SectionUpdate, error) {
	var update draft.SectionUpdate
	switch section {
	case draft.SectionPersonal:
		var payload draft.PersonalDetails
		if err := decodeJSON(r, &payload); err != nil {
			return update, err
		}
		update.Personal = &payload
	case draft.SectionExperience:
		var payload []draft.WorkExperience
		if err := decodeJSON(r, &payload); err != nil {
			return update, err
		}
		update.Experience = &payload
	case draft.SectionEducation:
		var payload []draft.Education
		if err := decodeJSON(r, &payload); err != nil {
			return update, err
		}
		update.Education = &payload
	case draft.SectionSkills:
		var payload []string
		if err := decodeJSON(r, &payload); err != nil {
			return update, err
		}
		update.Skills = &payload
	case draft.SectionCoverLetter:
		var payload struct {
			CoverLetter string `json:"cover_letter"`
		}
		if err := decodeJSON(r, &payload); err != nil {
			return update, err
		}
		update.CoverLetter = &payload.CoverLetter
	case draft.SectionResume:
		resume, err := h.readResume(r)
		if err != nil {
			return update, err
		}
		update.Resume = resume
	default:
		return update, common.NewValidationError("unknown section", map[string]string{"section": "unknown section"})
	}
	return update, nil
}

// readResume accepts the file oversized so validation can report the exact
// size limit message instead of a transport error.
func (h *WizardHandler) readResume(r *http.Request) (*draft.ResumeFile, error) {
	if err := r.ParseMultipartForm(h.maxResumeBytes + 1<<20); err != nil {
		return nil, common.NewValidationError("invalid multipart payload", map[string]string{"resume": "Resume is required."})
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		return nil, common.NewValidationError("invalid request", map[string]string{"resume": "Resume is required."})
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read resume upload", err)
	}
	return &draft.ResumeFile{Name: header.Filename, Size: int64(len(content)), Content: content}, nil
}

type submitRequest struct {
	CaptchaToken string `json:"captcha_token"`
}

func (h *WizardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, err := sessionIDFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if h.limiter != nil {
		key := "submit:" + middleware.ClientIP(r)
		if !h.limiter.Allow(key, 5, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "submit rate limit exceeded", nil))
			return
		}
	}
	session, err := h.submissions.Submit(r.Context(), id, req.CaptchaToken)
	if err != nil {
		response.Error(w, err)
		return
	}
	if h.collector != nil {
		h.collector.IncSubmissions()
	}
	response.JSON(w, http.StatusOK, session)
}
