package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errConnectorIDRequired = errors.New("connector ID is required")
	errConnectorIDInvalid  = errors.New("connector ID must look like c-0123456789abcdef0")
	errEndpointRequired    = errors.New("SFTP endpoint is required")
	errBucketRequired      = errors.New("bucket name is required")
	errTableRequired       = errors.New("tracking table name is required")
)
