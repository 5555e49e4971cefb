package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoBaseURL is returned when the listing URL is empty.
	ErrNoBaseURL = errors.New("no base URL specified: set baseURL in the config file or use --url")

	// ErrInvalidBaseURL is returned when the listing URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute http or https URL")

	// ErrNoOutputPath is returned when no output file is configured.
	ErrNoOutputPath = errors.New("no output path specified")

	// ErrInvalidTimeout is returned when an element wait timeout is not positive.
	// A zero wait would make every optional element look absent.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidDelay is returned when a settle delay is negative.
	ErrInvalidDelay = errors.New("invalid delay: must be non-negative")

	// ErrUnknownDriver is returned when the driver name is not rod or static.
	ErrUnknownDriver = errors.New("unknown driver: must be \"rod\" or \"static\"")

	// ErrConflictingOutputs is returned when the Markdown export would
	// overwrite the JSON document.
	ErrConflictingOutputs = errors.New("conflicting outputs: --markdown and --output point to the same file")
)
