// Package docs Roadbook Microservice API.
//
// Timing derivation service for a cycling team's event logistics.
// Derives per-day operational schedules from transport legs, race metadata
// and accommodations, merges them with manually authored entries, and
// exports a printable roadbook.
//
// Main features:
// - Derived per-day schedules with team and individual views
// - Manual entry authoring with session-scoped deletion of derived entries
// - Quarter-hour rounded write-back of edited times to transport legs
// - Vehicle logistics listing and roadbook PDF export
// - Service statistics
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//	- application/pdf
//
// swagger:meta
package docs
