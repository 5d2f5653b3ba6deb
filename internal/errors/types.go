package errors

import "errors"

var (
	ErrEnvFileMissing         = errors.New("environment file missing")
	ErrAnnotationsNotFound    = errors.New("annotations file not found")
	ErrAnnotationsParseFailed = errors.New("annotations parsing failed")
	ErrLaunchFailed           = errors.New("container launch failed")
	ErrRuntimeFailed          = errors.New("runtime operation failed")
	ErrRenderFailed           = errors.New("rendering failed")
	ErrNotifyFailed           = errors.New("notification failed")
	ErrConfigInvalid          = errors.New("configuration invalid")
	ErrFileSystemFailed       = errors.New("filesystem operation failed")
)

type ProtexError struct {
	Type        error
	Context     string
	Cause       string
	Suggestion  string
	OriginalErr error
}

func (e *ProtexError) Error() string {
	return e.OriginalErr.Error()
}

func (e *ProtexError) Unwrap() error {
	return e.OriginalErr
}

func NewProtexError(errorType error, context, cause, suggestion string, originalErr error) *ProtexError {
	return &ProtexError{
		Type:        errorType,
		Context:     context,
		Cause:       cause,
		Suggestion:  suggestion,
		OriginalErr: originalErr,
	}
}

func NewEnvFileError(context, cause, suggestion string, originalErr error) *ProtexError {
	return NewProtexError(ErrEnvFileMissing, context, cause, suggestion, originalErr)
}

func NewAnnotationsError(context, cause, suggestion string, originalErr error) *ProtexError {
	return NewProtexError(ErrAnnotationsNotFound, context, cause, suggestion, originalErr)
}

func NewParseError(context, cause, suggestion string, originalErr error) *ProtexError {
	return NewProtexError(ErrAnnotationsParseFailed, context, cause, suggestion, originalErr)
}

func NewLaunchError(context, cause, suggestion string, originalErr error) *ProtexError {
	return NewProtexError(ErrLaunchFailed, context, cause, suggestion, originalErr)
}

func NewRuntimeError(context, cause, suggestion string, originalErr error) *ProtexError {
	return NewProtexError(ErrRuntimeFailed, context, cause, suggestion, originalErr)
}

func NewRenderError(context, cause, suggestion string, originalErr error) *ProtexError {
	return NewProtexError(ErrRenderFailed, context, cause, suggestion, originalErr)
}

func NewNotifyError(context, cause, suggestion string, originalErr error) *ProtexError {
	return NewProtexError(ErrNotifyFailed, context, cause, suggestion, originalErr)
}

func NewConfigError(context, cause, suggestion string, originalErr error) *ProtexError {
	return NewProtexError(ErrConfigInvalid, context, cause, suggestion, originalErr)
}

func NewFileSystemError(context, cause, suggestion string, originalErr error) *ProtexError {
	return NewProtexError(ErrFileSystemFailed, context, cause, suggestion, originalErr)
}
