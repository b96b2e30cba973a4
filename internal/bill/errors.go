package bill

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/deliverybills/uploader/internal/storage"
)

// Kind names a failure category of the upload flow.
type Kind string

const (
	MalformedRequest    Kind = "MalformedRequest"
	MissingField        Kind = "MissingField"
	MissingFile         Kind = "MissingFile"
	ConfigurationError  Kind = "ConfigurationError"
	ContainerError      Kind = "ContainerError"
	UploadError         Kind = "UploadError"
	AuthenticationError Kind = "AuthenticationError"
	NetworkError        Kind = "NetworkError"
	TimeoutError        Kind = "TimeoutError"
)

// Status maps a kind to its HTTP status. Only client mistakes are 400.
func (k Kind) Status() int {
	switch k {
	case MalformedRequest, MissingField, MissingFile:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is a failed upload: the kind, the plain-text message sent to the
// client and the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Status is the HTTP status for e.
func (e *Error) Status() int { return e.Kind.Status() }

var (
	errMalformed    = &Error{Kind: MalformedRequest, Message: "Expected multipart/form-data"}
	errTooLarge     = &Error{Kind: MalformedRequest, Message: "Request body too large"}
	errNoLocationID = &Error{Kind: MissingField, Message: "location_id is required"}
	errNoFile       = &Error{Kind: MissingFile, Message: "No file was uploaded"}
)

// phase is the storage step that failed; it decides the fallback kind for
// errors that cannot be classified more precisely.
type phase int

const (
	phaseEnsure phase = iota
	phaseUpload
)

// storageError turns a backend failure into an *Error with a hint about the
// likely cause. Every result is a 500; only the message differs.
func storageError(p phase, err error) *Error {
	switch storage.Classify(err) {
	case storage.NotConfigured:
		return &Error{Kind: ConfigurationError, Message: storage.ErrNotConfigured.Error(), Err: err}
	case storage.Auth:
		return &Error{Kind: AuthenticationError, Message: "Storage authentication failed: check the storage account credentials", Err: err}
	case storage.ContainerNotFound:
		return &Error{Kind: ContainerError, Message: "Storage container not found", Err: err}
	case storage.Network:
		return &Error{Kind: NetworkError, Message: "Storage service unreachable: check network connectivity", Err: err}
	case storage.Timeout:
		return &Error{Kind: TimeoutError, Message: "Storage operation timed out", Err: err}
	}
	if p == phaseEnsure {
		return &Error{Kind: ContainerError, Message: "Error preparing storage container", Err: err}
	}
	return &Error{Kind: UploadError, Message: "Error processing upload", Err: err}
}

// AsError unwraps err into an *Error, wrapping unknown errors as UploadError.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: UploadError, Message: "Error processing upload", Err: err}
}
