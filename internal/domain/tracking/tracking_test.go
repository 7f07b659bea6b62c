package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayStringsAreFrozen(t *testing.T) {
	expected := map[Status]string{
		StatusPending:              "Your application has been received and is waiting to be reviewed.",
		StatusReviewing:            "Your application is currently under review by our hiring team.",
		StatusShortlisted:          "Congratulations! You have been shortlisted for the next stage.",
		StatusWrittenExam:          "You have been invited to sit for a written examination. Check your appointment details below.",
		StatusInterviewShortlisted: "You have been shortlisted for an interview. Appointment details will follow.",
		StatusInterviewing:         "Your interview process is in progress. Good luck!",
		StatusOffered:              "Congratulations! You have been offered the position. Our team will contact you shortly.",
		StatusRejected:             "Unfortunately, your application was not successful this time. We encourage you to apply for future openings.",
	}
	for status, description := range expected {
		assert.True(t, status.Valid())
		assert.Equal(t, description, status.Display().Description)
		assert.NotEmpty(t, status.Display().Color)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, StatusInterviewing, Normalize("  Interviewing "))
	assert.False(t, Normalize("archived").Valid())
	assert.False(t, Normalize("").Valid())
}
