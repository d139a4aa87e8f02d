package status

// ErrorCode classifies API errors in a stable, numeric way.
type ErrorCode int

// Reserved ranges by domain:
//   0-999:     client/validation errors
//   1000-1999: internal errors

const (
	BadRequestBase    ErrorCode = 0
	InternalErrorBase ErrorCode = 1000
)

// Client/validation errors
const (
	InvalidRequestBody ErrorCode = BadRequestBase + iota // 0
	MissingParams                                        // 1
	UnsupportedFormat                                    // 2
	NotFound                                             // 3
)

// Internal errors
const (
	ErrorCodeInternal ErrorCode = InternalErrorBase + iota // 1000
)
