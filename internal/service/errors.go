package service

type ErrorCode string

const (
	ErrorCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrorCodeInvalidBody   ErrorCode = "INVALID_BODY"
	ErrorCodeInvalidRoster ErrorCode = "INVALID_ROSTER"
	ErrorCodeStaleRoster   ErrorCode = "STALE_ROSTER"
	ErrorCodeEmailTaken    ErrorCode = "EMAIL_TAKEN"
	ErrorCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrorCodeUnspecified   ErrorCode = "UNSPECIFIED"
)

type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details any       `json:"details,omitempty"`
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

func (e *Error) Error() string {
	return e.Message
}
