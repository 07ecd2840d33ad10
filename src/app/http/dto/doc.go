// Package dto contains Data Transfer Objects for HTTP requests and responses.
//
// Naming convention:
//   - Request types: <Action><Resource>Request (e.g., CreatePropertyRequest)
//   - Response types: <Resource>Response (e.g., PropertyResponse)
//
// Password hashes never appear in a response type.
package dto
