package db

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "lightbnb/src/infra/db"

var _ pgx.QueryTracer = (*QueryTracer)(nil)

// QueryTracer is a pgx.QueryTracer that opens a span per statement, records
// count/duration/error metrics and logs statements: debug for normal ones,
// warn once they take SlowThreshold or longer.
type QueryTracer struct {
	log           *slog.Logger
	tracer        trace.Tracer
	slowThreshold time.Duration

	queries  metric.Int64Counter
	errors   metric.Int64Counter
	duration metric.Float64Histogram
}

type queryStartKey struct{}

type queryStart struct {
	sql   string
	args  int
	start time.Time
	span  trace.Span
}

// NewQueryTracer uses the global OpenTelemetry tracer and meter providers.
func NewQueryTracer(log *slog.Logger, slowThreshold time.Duration) *QueryTracer {
	return newQueryTracer(log, slowThreshold, otel.Tracer(instrumentationName), otel.Meter(instrumentationName))
}

func newQueryTracer(log *slog.Logger, slowThreshold time.Duration, tracer trace.Tracer, meter metric.Meter) *QueryTracer {
	queries, _ := meter.Int64Counter("db.client.queries",
		metric.WithDescription("Number of SQL statements executed"),
		metric.WithUnit("{query}"),
	)
	errs, _ := meter.Int64Counter("db.client.errors",
		metric.WithDescription("Number of SQL statements that failed"),
		metric.WithUnit("{error}"),
	)
	duration, _ := meter.Float64Histogram("db.client.duration",
		metric.WithDescription("SQL statement duration in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000),
	)

	return &QueryTracer{
		log:           log,
		tracer:        tracer,
		slowThreshold: slowThreshold,
		queries:       queries,
		errors:        errs,
		duration:      duration,
	}
}

func (t *QueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	op := operation(data.SQL)
	ctx, span := t.tracer.Start(ctx, "db."+strings.ToLower(op),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", op),
			attribute.String("db.statement", data.SQL),
		),
	)
	return context.WithValue(ctx, queryStartKey{}, &queryStart{
		sql:   data.SQL,
		args:  len(data.Args),
		start: time.Now(),
		span:  span,
	})
}

func (t *QueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	qs, ok := ctx.Value(queryStartKey{}).(*queryStart)
	if !ok {
		return
	}
	elapsed := time.Since(qs.start)
	op := operation(qs.sql)
	attrs := metric.WithAttributes(attribute.String("db.operation", op))

	if t.queries != nil {
		t.queries.Add(ctx, 1, attrs)
	}
	if t.duration != nil {
		t.duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
	}

	if data.Err != nil {
		qs.span.RecordError(data.Err)
		qs.span.SetStatus(codes.Error, data.Err.Error())
		if t.errors != nil {
			t.errors.Add(ctx, 1, attrs)
		}
	} else {
		qs.span.SetAttributes(attribute.Int64("db.rows_affected", data.CommandTag.RowsAffected()))
	}
	qs.span.End()

	fields := []any{
		"operation", op,
		"elapsed_ms", elapsed.Milliseconds(),
		"args", qs.args,
		"sql", compact(qs.sql),
	}
	switch {
	case data.Err != nil:
		t.log.DebugContext(ctx, "query failed", append(fields, "error", data.Err)...)
	case elapsed >= t.slowThreshold:
		t.log.WarnContext(ctx, "slow query", fields...)
	default:
		t.log.DebugContext(ctx, "query", fields...)
	}
}

// operation returns the leading SQL keyword (SELECT, INSERT, ...).
func operation(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "UNKNOWN"
	}
	return strings.ToUpper(fields[0])
}

// compact collapses whitespace so multi-line statements log on one line.
func compact(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}
