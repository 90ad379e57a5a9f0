package llm

import "errors"

var (
	// ErrUnavailable indicates the model server is unreachable.
	ErrUnavailable = errors.New("llm server unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all attempts failed for a non-network reason.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrDisabled is returned when AI features are switched off in config.
	ErrDisabled = errors.New("ai features are disabled (set ENVIOSCAN_LLM_ENABLED=true)")
)
