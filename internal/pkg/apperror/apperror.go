package apperror

// AppError is a domain error that carries the HTTP status code it should
// surface with. Handlers hand any error to response.Error, which inspects
// this type instead of switching on individual error values.
type AppError struct {
	Code    int    // HTTP status code (e.g., 400, 409)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
