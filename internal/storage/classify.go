package storage

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/aws/smithy-go"
	"github.com/minio/minio-go/v7"
)

// Category is the coarse failure class of a storage error.
type Category int

const (
	Unknown Category = iota
	NotConfigured
	Auth
	ContainerNotFound
	Network
	Timeout
)

func (c Category) String() string {
	switch c {
	case NotConfigured:
		return "not_configured"
	case Auth:
		return "auth"
	case ContainerNotFound:
		return "container_not_found"
	case Network:
		return "network"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

var (
	authCodes = map[string]bool{
		"AccessDenied":                    true,
		"InvalidAccessKeyId":              true,
		"SignatureDoesNotMatch":           true,
		"ExpiredToken":                    true,
		"InvalidToken":                    true,
		"AuthenticationFailed":            true,
		"AuthorizationFailure":            true,
		"AuthorizationPermissionMismatch": true,
	}
	containerCodes = map[string]bool{
		"NoSuchBucket":          true,
		"ContainerNotFound":     true,
		"ContainerBeingDeleted": true,
	}
)

// Classify inspects err from any backend and returns its category. Backend
// error codes are checked before transport errors because SDKs often wrap
// both.
func Classify(err error) Category {
	if err == nil {
		return Unknown
	}

	switch {
	case errors.Is(err, ErrNotConfigured):
		return NotConfigured
	case errors.Is(err, context.DeadlineExceeded):
		return Timeout
	case errors.Is(err, ErrContainerNotFound):
		return ContainerNotFound
	}

	// Azure Blob
	if bloberror.HasCode(err, bloberror.AuthenticationFailed, bloberror.AuthorizationFailure,
		bloberror.AuthorizationPermissionMismatch, bloberror.InsufficientAccountPermissions) {
		return Auth
	}
	if bloberror.HasCode(err, bloberror.ContainerNotFound, bloberror.ContainerBeingDeleted) {
		return ContainerNotFound
	}
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		if c := byStatus(respErr.StatusCode); c != Unknown {
			return c
		}
	}

	// MinIO
	var minioErr minio.ErrorResponse
	if errors.As(err, &minioErr) {
		if c := byCode(minioErr.Code); c != Unknown {
			return c
		}
		if c := byStatus(minioErr.StatusCode); c != Unknown {
			return c
		}
	}

	// AWS S3
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if c := byCode(apiErr.ErrorCode()); c != Unknown {
			return c
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return Timeout
		}
		return Network
	}
	return Unknown
}

func byCode(code string) Category {
	switch {
	case authCodes[code]:
		return Auth
	case containerCodes[code]:
		return ContainerNotFound
	}
	return Unknown
}

func byStatus(status int) Category {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return Auth
	}
	return Unknown
}
