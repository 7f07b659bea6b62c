package tracking

import "strings"

type Status string

const (
	StatusPending              Status = "pending"
	StatusReviewing            Status = "reviewing"
	StatusShortlisted          Status = "shortlisted"
	StatusWrittenExam          Status = "written_exam"
	StatusInterviewShortlisted Status = "interview_shortlisted"
	StatusInterviewing         Status = "interviewing"
	StatusOffered              Status = "offered"
	StatusRejected             Status = "rejected"
)

// Display fixes the rendering contract per status. The frontend shows the
// description verbatim and keys styling off the color class.
type Display struct {
	Color       string `json:"color"`
	Description string `json:"description"`
}

var displays = map[Status]Display{
	StatusPending:              {Color: "gray", Description: "Your application has been received and is waiting to be reviewed."},
	StatusReviewing:            {Color: "blue", Description: "Your application is currently under review by our hiring team."},
	StatusShortlisted:          {Color: "teal", Description: "Congratulations! You have been shortlisted for the next stage."},
	StatusWrittenExam:          {Color: "purple", Description: "You have been invited to sit for a written examination. Check your appointment details below."},
	StatusInterviewShortlisted: {Color: "indigo", Description: "You have been shortlisted for an interview. Appointment details will follow."},
	StatusInterviewing:         {Color: "amber", Description: "Your interview process is in progress. Good luck!"},
	StatusOffered:              {Color: "green", Description: "Congratulations! You have been offered the position. Our team will contact you shortly."},
	StatusRejected:             {Color: "red", Description: "Unfortunately, your application was not successful this time. We encourage you to apply for future openings."},
}

func (s Status) Valid() bool {
	_, ok := displays[s]
	return ok
}

func (s Status) Display() Display {
	return displays[s]
}

func Normalize(value string) Status {
	return Status(strings.ToLower(strings.TrimSpace(value)))
}

type Query struct {
	TrackingCode string `json:"tracking_code"`
	Email        string `json:"email"`
}

type Appointment struct {
	Date     string `json:"appointment_date,omitempty"`
	Time     string `json:"appointment_time,omitempty"`
	Location string `json:"appointment_location,omitempty"`
	Lat      string `json:"appointment_lat,omitempty"`
	Lng      string `json:"appointment_lng,omitempty"`
	MapLink  string `json:"appointment_map_link,omitempty"`
	Details  string `json:"appointment_details,omitempty"`
}

// Record is one fetched status. Records are ephemeral: fetched fresh per
// query, never stored.
type Record struct {
	Status      Status       `json:"status"`
	JobTitle    string       `json:"job_title"`
	FullName    string       `json:"full_name,omitempty"`
	Appointment *Appointment `json:"appointment,omitempty"`
}
