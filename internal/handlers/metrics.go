package handlers

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const metricNamespace = "github.com/michael-berardi/expatsargentina/handlers"

// instruments holds the handler metrics. Creation errors leave an instrument
// nil and recording skips it.
type instruments struct {
	buildLatency metric.Float64Histogram
	lookups      metric.Int64Counter
}

// WithMeter records handler metrics on m instead of the global provider.
func WithMeter(m metric.Meter) Option {
	return func(h *Handlers) {
		if m != nil {
			h.meter = m
		}
	}
}

func newInstruments(meter metric.Meter) instruments {
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(metricNamespace)
	}
	latency, _ := meter.Float64Histogram(
		"sitemap.build.duration",
		metric.WithUnit("ms"),
		metric.WithDescription("Time spent building and encoding sitemap.xml"),
	)
	lookups, _ := meter.Int64Counter(
		"i18n.lookups",
		metric.WithDescription("Translation lookups served by the API, by locale and outcome"),
	)
	return instruments{buildLatency: latency, lookups: lookups}
}

func (in instruments) recordBuild(ctx context.Context, d time.Duration, entries int) {
	if in.buildLatency == nil {
		return
	}
	in.buildLatency.Record(ctx, float64(d)/float64(time.Millisecond),
		metric.WithAttributes(attribute.Int("sitemap.entries", entries)))
}

func (in instruments) recordLookup(ctx context.Context, locale, resolvedIn string, found bool) {
	if in.lookups == nil {
		return
	}
	in.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("locale", locale),
		attribute.String("resolved_in", resolvedIn),
		attribute.Bool("found", found),
	))
}
