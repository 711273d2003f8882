package interfaces

import "options-observer/src/models"

// -----------------------------------------------------------------------------
// IDatabase defines the contract for the request journal.
// -----------------------------------------------------------------------------

type IDatabase interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveRequestRecord journals the outcome of one inbound request.
	SaveRequestRecord(rec models.MRequestRecord) error

	// -----------------------------------------------------------------------------

	// CleanupOldData removes journal rows older than the retention policy.
	CleanupOldData() error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
