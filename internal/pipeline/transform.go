package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/couchcryptid/coastal-data-etl/internal/domain"
	"github.com/couchcryptid/coastal-data-etl/internal/observability"
)

// SurveyTransformer implements Transformer by parsing the raw record and
// enriching it against the site-year catalog.
type SurveyTransformer struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a SurveyTransformer.
func NewTransformer(logger *slog.Logger, metrics *observability.Metrics) *SurveyTransformer {
	return &SurveyTransformer{
		logger:  logger,
		metrics: metrics,
	}
}

func (t *SurveyTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.SurveyPoint, error) {
	point, err := domain.ParseRawEvent(raw)
	if err != nil {
		t.metrics.RejectedRecords.WithLabelValues(rejectReason(err)).Inc()
		return domain.SurveyPoint{}, err
	}

	point, err = domain.EnrichSurveyPoint(point)
	if err != nil {
		t.metrics.RejectedRecords.WithLabelValues(rejectReason(err)).Inc()
		t.logger.Debug("site-year not in catalog", "ref", point.Ref, "point_id", point.ID)
		return domain.SurveyPoint{}, err
	}

	t.metrics.TidalZones.WithLabelValues(point.SiteYear.ID, string(point.TidalZone)).Inc()
	return point, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownSiteYear):
		return "unknown_site_year"
	case errors.Is(err, domain.ErrMissingSiteYear):
		return "missing_site_year"
	case errors.Is(err, domain.ErrInvalidElevation):
		return "invalid_elevation"
	default:
		return "malformed"
	}
}
