// Package server exposes editing sessions over a JSON HTTP API.
//
// Every request addresses a [session.Session] by id. Mutations go through the
// session, so they are undoable and reach the configured store through the
// session manager's debounced writer. Read endpoints render through a
// [pipeline.Runner]:
//
//	GET  /sessions/{id}/scene        visible nodes, connectors and bounds
//	GET  /sessions/{id}/export.svg   rendered map (also .png, .pdf, .json, .dot)
//
// Errors are JSON objects with a machine-readable code:
//
//	{"code": "CYCLE_DETECTED", "message": "cannot move 3 under its descendant 7"}
//
// The HTTP status follows [errors.HTTPStatus]: rejected edits are 409,
// unknown sessions and nodes 404, malformed input 400.
//
// [errors.HTTPStatus]: github.com/matzehuels/brainwave/pkg/errors.HTTPStatus
package server
