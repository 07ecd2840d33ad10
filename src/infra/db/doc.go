// Package db provides database connection and transaction management.
//
// This package is responsible for:
//   - PostgreSQL connection pool initialization
//   - Connection health checks
//   - Transaction management helpers
//   - Query tracing, metrics and slow query logging
//   - Schema migrations embedded in the binary
//
// Example usage:
//
//	db, err := db.New(ctx, cfg.Database, log)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
package db
