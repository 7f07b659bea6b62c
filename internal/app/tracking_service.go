package app

import (
	"context"
	"errors"
	"strings"

	"parkcareers/internal/common"
	"parkcareers/internal/domain/tracking"
)

// TrackingFallbackMessage is shown when the backend gives no usable error.
const TrackingFallbackMessage = "Failed to fetch application status. Please try again later."

type Tracker interface {
	Track(ctx context.Context, code string) (*tracking.Record, error)
	TrackDetailed(ctx context.Context, code, email string) (*tracking.Record, error)
}

// TrackingService is the read-only lookup path. One fetch per query, no
// retry, no caching.
type TrackingService struct {
	ats Tracker
}

func NewTrackingService(ats Tracker) *TrackingService {
	return &TrackingService{ats: ats}
}

func (s *TrackingService) Quick(ctx context.Context, code string) (*tracking.Record, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, common.NewValidationError("tracking code is required", map[string]string{"trackingCode": "tracking code is required"})
	}
	record, err := s.ats.Track(ctx, code)
	if err != nil {
		return nil, lookupError(err)
	}
	return record, nil
}

func (s *TrackingService) Detailed(ctx context.Context, query tracking.Query) (*tracking.Record, error) {
	code := strings.TrimSpace(query.TrackingCode)
	email := strings.TrimSpace(query.Email)
	fields := map[string]string{}
	if code == "" {
		fields["trackingCode"] = "tracking code is required"
	}
	if email == "" {
		fields["email"] = "email is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("tracking code and email are required", fields)
	}
	record, err := s.ats.TrackDetailed(ctx, code, email)
	if err != nil {
		return nil, lookupError(err)
	}
	return record, nil
}

// lookupError keeps the backend's own message when it has one and falls
// back to the fixed string otherwise.
func lookupError(err error) error {
	var appErr *common.Error
	if errors.As(err, &appErr) {
		if appErr.Code == common.CodeNotFound || appErr.Code == common.CodeValidation || appErr.Code == common.CodeRateLimited {
			return appErr
		}
	}
	return common.NewError(common.CodeUnavailable, TrackingFallbackMessage, err)
}
