package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkcareers/internal/app"
	"parkcareers/internal/assistant"
	"parkcareers/internal/http/handlers"
	"parkcareers/internal/http/metrics"
	httpmw "parkcareers/internal/http/middleware"
	"parkcareers/internal/integration/ats"
	"parkcareers/internal/integration/captcha"
	"parkcareers/internal/observability"
	"parkcareers/internal/wizard"
)

// fakeATS is a stand-in for the external applicant-tracking backend.
func fakeATS(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/applications":
			require.NoError(t, r.ParseMultipartForm(32<<20))
			if r.PostFormValue("jobId") == "closed-job" {
				_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Job closed"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "trackingCode": "ITPC-0042"})
		case "/api/applications/track":
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "interviewing", "jobTitle": "Software Engineer"})
		case "/api/applications/status":
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "interviewing", "jobTitle": "Software Engineer", "full_name": "Jane Doe"})
		default:
			http.NotFound(w, r)
		}
	}))
}

func newTestRouter(t *testing.T, atsURL string) http.Handler {
	t.Helper()
	logger := observability.NewLogger()
	atsClient := ats.NewClient(atsURL, &http.Client{Timeout: 5 * time.Second})
	verifier := captcha.NewVerifier("", "", nil)
	sessions := wizard.NewStore(time.Minute)
	collector := metrics.NewCollector()

	return NewRouter(RouterDependencies{
		WizardHandler:    handlers.NewWizardHandler(app.NewWizardService(sessions), app.NewSubmissionService(sessions, atsClient, verifier, logger), httpmw.NewRateLimiter(), collector, 0),
		TrackingHandler:  handlers.NewTrackingHandler(app.NewTrackingService(atsClient), nil, collector),
		AssistantHandler: handlers.NewAssistantHandler(app.NewAssistantService(assistant.DefaultRules())),
		MetricsHandler:   handlers.NewMetricsHandler(collector),
		Metrics:          collector,
		Logger:           logger,
		RequestTimeout:   10 * time.Second,
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func openSession(t *testing.T, router http.Handler, jobID string) string {
	t.Helper()
	recorder := doJSON(t, router, http.MethodPost, "/wizard", map[string]string{"job_id": jobID})
	require.Equal(t, http.StatusCreated, recorder.Code)
	var session struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &session))
	require.NotEmpty(t, session.ID)
	return session.ID
}

func uploadResume(t *testing.T, router http.Handler, sessionID string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("resume", "cv.pdf")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPut, "/wizard/"+sessionID+"/sections/resume", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestWizardEndToEndSubmission(t *testing.T) {
	backend := fakeATS(t)
	defer backend.Close()
	router := newTestRouter(t, backend.URL)

	sessionID := openSession(t, router, "job-7")

	personal := map[string]string{
		"full_name": "Jane Doe",
		"email":     "jane@x.com",
		"phone":     "+251911223344",
		"gender":    "Female",
		"address":   "Addis Ababa, Bole",
	}
	recorder := doJSON(t, router, http.MethodPut, "/wizard/"+sessionID+"/sections/personal", personal)
	require.Equal(t, http.StatusOK, recorder.Code)

	// Steps 1 through 4.
	for step := 1; step <= 3; step++ {
		recorder = doJSON(t, router, http.MethodPost, "/wizard/"+sessionID+"/advance", nil)
		require.Equal(t, http.StatusOK, recorder.Code, "advance from step %d: %s", step, recorder.Body.String())
	}

	recorder = doJSON(t, router, http.MethodPut, "/wizard/"+sessionID+"/sections/skills", []string{"Go", "React", "Go"})
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = uploadResume(t, router, sessionID, []byte("%PDF-1.4 resume"))
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodPost, "/wizard/"+sessionID+"/advance", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodPost, "/wizard/"+sessionID+"/submit", map[string]string{"captcha_token": "token"})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var submitted struct {
		State        string   `json:"state"`
		TrackingCode string   `json:"tracking_code"`
		Step         int      `json:"step"`
		Draft        struct{ Skills []string `json:"skills"` } `json:"draft"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &submitted))
	assert.Equal(t, "submitted", submitted.State)
	assert.Equal(t, "ITPC-0042", submitted.TrackingCode)
	assert.Equal(t, []string{"Go", "React"}, submitted.Draft.Skills)

	// A consumed session refuses further edits.
	recorder = doJSON(t, router, http.MethodPut, "/wizard/"+sessionID+"/sections/cover_letter", map[string]string{"cover_letter": "late"})
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestWizardAdvanceBlockedByValidation(t *testing.T) {
	backend := fakeATS(t)
	defer backend.Close()
	router := newTestRouter(t, backend.URL)

	sessionID := openSession(t, router, "job-7")
	recorder := doJSON(t, router, http.MethodPost, "/wizard/"+sessionID+"/advance", nil)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Full name is required.", body.Fields["fullName"])

	// Cursor must not have moved.
	recorder = doJSON(t, router, http.MethodGet, "/wizard/"+sessionID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var session struct {
		Step int `json:"step"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &session))
	assert.Equal(t, 1, session.Step)
}

func TestWizardSubmitRejectionStaysOnReview(t *testing.T) {
	backend := fakeATS(t)
	defer backend.Close()
	router := newTestRouter(t, backend.URL)

	sessionID := openSession(t, router, "closed-job")
	personal := map[string]string{
		"full_name": "Jane Doe",
		"email":     "jane@x.com",
		"phone":     "0911223344",
		"gender":    "Female",
		"address":   "Addis Ababa, Bole",
	}
	recorder := doJSON(t, router, http.MethodPut, "/wizard/"+sessionID+"/sections/personal", personal)
	require.Equal(t, http.StatusOK, recorder.Code)
	recorder = uploadResume(t, router, sessionID, []byte("%PDF-1.4"))
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodPost, "/wizard/"+sessionID+"/submit", map[string]string{"captcha_token": "token"})
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/wizard/"+sessionID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var session struct {
		Step   int               `json:"step"`
		State  string            `json:"state"`
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &session))
	assert.Equal(t, 5, session.Step)
	assert.Equal(t, "in_progress", session.State)
	assert.Equal(t, "Job closed", session.Errors["submit"])
}

func TestWizardSubmitWithoutCaptcha(t *testing.T) {
	backend := fakeATS(t)
	defer backend.Close()
	router := newTestRouter(t, backend.URL)

	sessionID := openSession(t, router, "job-7")
	recorder := doJSON(t, router, http.MethodPost, "/wizard/"+sessionID+"/submit", map[string]string{"captcha_token": ""})
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestTrackingEndpoints(t *testing.T) {
	backend := fakeATS(t)
	defer backend.Close()
	router := newTestRouter(t, backend.URL)

	recorder := doJSON(t, router, http.MethodGet, "/tracking?code=ITPC-0001", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var quick struct {
		Status  string `json:"status"`
		Display struct {
			Description string `json:"description"`
		} `json:"display"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &quick))
	assert.Equal(t, "interviewing", quick.Status)
	assert.Equal(t, "Your interview process is in progress. Good luck!", quick.Display.Description)

	recorder = doJSON(t, router, http.MethodPost, "/tracking", map[string]string{"tracking_code": "ITPC-0001", "email": "jane@x.com"})
	require.Equal(t, http.StatusOK, recorder.Code)
	var detailed struct {
		FullName string `json:"full_name"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &detailed))
	assert.Equal(t, "Jane Doe", detailed.FullName)
}

func TestAssistantEndpoint(t *testing.T) {
	backend := fakeATS(t)
	defer backend.Close()
	router := newTestRouter(t, backend.URL)

	recorder := doJSON(t, router, http.MethodPost, "/assistant", map[string]string{"message": "how do I track my application?"})
	require.Equal(t, http.StatusOK, recorder.Code)
	var reply struct {
		Reply   string `json:"reply"`
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &reply))
	assert.Contains(t, reply.Reply, "tracking code")
	assert.Equal(t, "1", reply.Version)
}

func TestHealthAndMetrics(t *testing.T) {
	backend := fakeATS(t)
	defer backend.Close()
	router := newTestRouter(t, backend.URL)

	recorder := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "careers_gateway_requests_total")
}

func TestUnknownRoute(t *testing.T) {
	backend := fakeATS(t)
	defer backend.Close()
	router := newTestRouter(t, backend.URL)

	recorder := doJSON(t, router, http.MethodGet, fmt.Sprintf("/nope/%d", time.Now().Unix()), nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
