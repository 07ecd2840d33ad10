// Package repo contains the PostgreSQL implementations of the repository
// ports in src/core/ports.
//
// Naming convention:
//   - Files: <entity>_repo.go (user_repo.go, property_repo.go, ...)
//   - Types: <Entity>Repository
//
// Every statement runs under the configured query timeout. Driver errors never
// leave this package raw: missing rows become domain.ErrNotFound, constraint
// violations become domain.ErrConflict or domain.ErrInvalidInput, and anything
// else (connection loss, timeouts, syntax errors) becomes
// domain.ErrStoreUnavailable. Callers never receive a nil record with a nil error.
package repo
