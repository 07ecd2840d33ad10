// Package domain contains the core domain model for LightBnB.
//
// This package defines:
//   - Entities: users, properties, reservations and their rated views
//   - Search criteria: PropertyFilter and list limits
//   - Domain Errors: the error taxonomy every repository and service returns
//
// Rules for this package:
//   - No external dependencies except the standard library
//   - No infrastructure concerns (database, HTTP, etc.)
//   - Input types validate their own invariants (see NewUser, NewProperty, PropertyFilter)
package domain
