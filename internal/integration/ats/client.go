package ats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"parkcareers/internal/common"
	"parkcareers/internal/domain/draft"
	"parkcareers/internal/domain/tracking"
)

// Client talks to the external applicant-tracking backend. The backend is
// the system of record; this gateway only submits and reads.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: trimmed, httpClient: httpClient}
}

type submitResponse struct {
	Success      bool   `json:"success"`
	TrackingCode string `json:"trackingCode"`
	Message      string `json:"message"`
}

// Submit serializes the draft into a multipart payload and hands it to the
// submission endpoint. Nested collections go as JSON text fields alongside
// the binary resume and scalar personal fields.
func (c *Client) Submit(ctx context.Context, jobID string, d *draft.ApplicationDraft, captchaToken string) (*draft.SubmissionResult, error) {
	if c.baseURL == "" {
		return nil, common.NewError(common.CodeUnavailable, "submission backend is not configured", nil)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	fields := map[string]string{
		"jobId":        jobID,
		"fullName":     d.PersonalDetails.FullName,
		"email":        d.PersonalDetails.Email,
		"gender":       d.PersonalDetails.Gender,
		"phone":        d.PersonalDetails.Phone,
		"address":      d.PersonalDetails.Address,
		"captchaToken": captchaToken,
	}
	if d.PersonalDetails.LinkedIn != "" {
		fields["linkedin"] = d.PersonalDetails.LinkedIn
	}
	if d.PersonalDetails.Portfolio != "" {
		fields["portfolio"] = d.PersonalDetails.Portfolio
	}
	if d.CoverLetter != "" {
		fields["coverLetter"] = d.CoverLetter
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", name, err)
		}
	}
	for name, collection := range map[string]any{
		"education":      d.Education,
		"workExperience": d.WorkExperience,
		"skills":         d.Skills,
	} {
		encoded, err := json.Marshal(collection)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		if err := writer.WriteField(name, string(encoded)); err != nil {
			return nil, fmt.Errorf("write field %s: %w", name, err)
		}
	}
	if d.Resume != nil {
		part, err := writer.CreateFormFile("resume", d.Resume.Name)
		if err != nil {
			return nil, fmt.Errorf("create resume part: %w", err)
		}
		if _, err := part.Write(d.Resume.Content); err != nil {
			return nil, fmt.Errorf("write resume: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/applications", &body)
	if err != nil {
		return nil, fmt.Errorf("create submit request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, common.NewError(common.CodeUnavailable, "submission service is unreachable", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read submit response: %w", err)
	}

	var parsed submitResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		if resp.StatusCode >= 400 {
			return nil, mapStatusError(resp.StatusCode, payload)
		}
		return nil, fmt.Errorf("decode submit response: %w", err)
	}
	if !parsed.Success {
		message := parsed.Message
		if message == "" {
			message = "Submission was rejected."
		}
		return &draft.SubmissionResult{Success: false, Message: message}, nil
	}
	return &draft.SubmissionResult{Success: true, TrackingCode: parsed.TrackingCode}, nil
}

type trackResponse struct {
	Status              string `json:"status"`
	JobTitle            string `json:"jobTitle"`
	FullName            string `json:"full_name"`
	AppointmentDate     string `json:"appointment_date"`
	AppointmentTime     string `json:"appointment_time"`
	AppointmentLocation string `json:"appointment_location"`
	AppointmentLat      string `json:"appointment_lat"`
	AppointmentLng      string `json:"appointment_lng"`
	AppointmentMapLink  string `json:"appointment_map_link"`
	AppointmentDetails  string `json:"appointment_details"`
	Message             string `json:"message"`
}

// Track is the quick lookup keyed by tracking code alone.
func (c *Client) Track(ctx context.Context, code string) (*tracking.Record, error) {
	endpoint := c.baseURL + "/api/applications/track?code=" + url.QueryEscape(code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create track request: %w", err)
	}
	return c.doTrack(req)
}

// TrackDetailed is the status-page lookup keyed by tracking code and email.
func (c *Client) TrackDetailed(ctx context.Context, code, email string) (*tracking.Record, error) {
	payload, err := json.Marshal(tracking.Query{TrackingCode: code, Email: email})
	if err != nil {
		return nil, fmt.Errorf("encode track query: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/applications/status", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create track request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doTrack(req)
}

func (c *Client) doTrack(req *http.Request) (*tracking.Record, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, common.NewError(common.CodeUnavailable, "tracking service is unreachable", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read track response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, mapStatusError(resp.StatusCode, payload)
	}
	var parsed trackResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, fmt.Errorf("decode track response: %w", err)
	}
	status := tracking.Normalize(parsed.Status)
	if !status.Valid() {
		return nil, common.NewError(common.CodeInternal, "unknown application status: "+parsed.Status, nil)
	}
	record := &tracking.Record{
		Status:   status,
		JobTitle: parsed.JobTitle,
		FullName: parsed.FullName,
	}
	if parsed.AppointmentDate != "" || parsed.AppointmentLocation != "" || parsed.AppointmentDetails != "" {
		record.Appointment = &tracking.Appointment{
			Date:     parsed.AppointmentDate,
			Time:     parsed.AppointmentTime,
			Location: parsed.AppointmentLocation,
			Lat:      parsed.AppointmentLat,
			Lng:      parsed.AppointmentLng,
			MapLink:  parsed.AppointmentMapLink,
			Details:  parsed.AppointmentDetails,
		}
	}
	return record, nil
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func mapStatusError(statusCode int, payload []byte) error {
	code := common.CodeUnavailable
	switch statusCode {
	case http.StatusNotFound:
		code = common.CodeNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		code = common.CodeValidation
	case http.StatusTooManyRequests:
		code = common.CodeRateLimited
	}
	var parsed errorResponse
	if err := json.Unmarshal(payload, &parsed); err == nil {
		if parsed.Message != "" {
			return common.NewError(code, parsed.Message, nil)
		}
		if parsed.Error != "" {
			return common.NewError(code, parsed.Error, nil)
		}
	}
	message := strings.TrimSpace(string(payload))
	if message == "" {
		message = "applicant tracking backend error"
	}
	return common.NewError(code, message, nil)
}
