package fbref

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("fbref.lib.scrapers.fbref")
var meter = otel.Meter("fbref.lib.scrapers.fbref")

var fetchCounter, _ = meter.Int64Counter(
	"fbref_fetches",
	metric.WithDescription("pages requested from fbref, by outcome"),
)
