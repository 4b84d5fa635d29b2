package errors

import "net/http"

var (
	ErrEventNotFound = New(
		"EVENT_NOT_FOUND",
		"Event not found",
		http.StatusNotFound,
	)

	ErrLegNotFound = New(
		"LEG_NOT_FOUND",
		"Transport leg not found",
		http.StatusNotFound,
	)

	ErrStopNotFound = New(
		"STOP_NOT_FOUND",
		"Intermediate stop not found",
		http.StatusNotFound,
	)

	ErrEntryNotFound = New(
		"ENTRY_NOT_FOUND",
		"Schedule entry not found",
		http.StatusNotFound,
	)

	ErrInvalidEventID = New(
		"INVALID_EVENT_ID",
		"Invalid event ID",
		http.StatusBadRequest,
	)

	ErrInvalidViewMode = New(
		"INVALID_VIEW_MODE",
		"Invalid view mode: must be team or individual",
		http.StatusBadRequest,
	)

	ErrPersonRequired = New(
		"PERSON_REQUIRED",
		"Individual view requires a person_id",
		http.StatusBadRequest,
	)

	ErrInvalidDay = New(
		"INVALID_DAY",
		"Invalid schedule day",
		http.StatusBadRequest,
	)

	ErrEntryNotAutoGenerated = New(
		"ENTRY_NOT_AUTO_GENERATED",
		"Only auto-generated entries can be restored",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrExportError = New(
		"EXPORT_ERROR",
		"Schedule export failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
