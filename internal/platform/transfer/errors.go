package transfer

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/transfer/types"
	"github.com/aws/smithy-go"
)

// IsNotFound checks if the error indicates a missing connector or resource.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var nf *types.ResourceNotFoundException
	if errors.As(err, &nf) {
		return true
	}

	// Fall back to API error code checking in case the SDK surfaces a
	// generic error shape.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ResourceNotFoundException"
	}

	return false
}

// IsThrottling checks if the error indicates API rate limiting.
func IsThrottling(err error) bool {
	if err == nil {
		return false
	}

	var te *types.ThrottlingException
	if errors.As(err, &te) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "ThrottlingException" || code == "TooManyRequestsException"
	}

	return false
}

// IsInvalidRequest checks if the error indicates a structurally invalid
// request (bad ARN, malformed host key and the like). These are
// configuration problems, not transient conditions.
func IsInvalidRequest(err error) bool {
	if err == nil {
		return false
	}

	var ire *types.InvalidRequestException
	if errors.As(err, &ire) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "InvalidRequestException"
	}

	return false
}
