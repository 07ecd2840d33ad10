package repo

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"lightbnb/src/core/domain"
	"lightbnb/src/infra/db"
	"lightbnb/src/infra/logger"
)

// Postgres error codes mapped to domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// Repositories groups every Postgres-backed repository over one pool.
type Repositories struct {
	Users        *UserRepository
	Reservations *ReservationRepository
	Properties   *PropertyRepository
}

// New builds all repositories. timeout bounds each statement; zero disables it.
func New(pg *db.Postgres, log *slog.Logger, timeout time.Duration) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(pg, log, timeout),
		Reservations: NewReservationRepository(pg, log, timeout),
		Properties:   NewPropertyRepository(pg, log, timeout),
	}
}

// postgres is the state shared by every repository.
type postgres struct {
	pg      *db.Postgres
	log     *slog.Logger
	timeout time.Duration
}

func newPostgres(pg *db.Postgres, log *slog.Logger, component string, timeout time.Duration) postgres {
	return postgres{
		pg:      pg,
		log:     logger.WithComponent(log, component),
		timeout: timeout,
	}
}

func (r *postgres) Health(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.pg.Health(ctx); err != nil {
		return r.classify(ctx, "ping", err)
	}
	return nil
}

func (r *postgres) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// classify turns a driver error into a domain error. Domain errors pass through.
func (r *postgres) classify(ctx context.Context, op string, err error) error {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return domain.NewConflictError(constraintField(pgErr) + " already exists")
		case pgForeignKeyViolation:
			return domain.NewValidationError(constraintField(pgErr), "referenced record does not exist")
		case pgNotNullViolation:
			return domain.NewValidationError(pgErr.ColumnName, "is required")
		case pgCheckViolation:
			return domain.NewValidationError(constraintField(pgErr), "violates constraint "+pgErr.ConstraintName)
		}
	}

	r.log.ErrorContext(ctx, "database operation failed", "op", op, "error", err)
	return domain.NewStoreError(op, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

// constraintField derives a column name from Postgres' default constraint
// names, e.g. properties_owner_id_fkey -> owner_id.
func constraintField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	name := pgErr.ConstraintName
	if name == "" {
		return ""
	}
	name = strings.TrimPrefix(name, pgErr.TableName+"_")
	for _, suffix := range []string{"_fkey", "_key", "_check"} {
		name = strings.TrimSuffix(name, suffix)
	}
	return name
}
