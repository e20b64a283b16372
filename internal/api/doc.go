// Package api implements the HTTP handlers of the task manager: auth
// endpoints, the task CRUD surface, user listing, and the translation of
// internal errors into sanitized HTTP responses.
package api
