package errors

import (
	"errors"

	"github.com/aws/smithy-go"
)

var throttlingCodes = map[string]struct{}{
	"ThrottlingException":                    {},
	"ProvisionedThroughputExceededException": {},
	"RequestLimitExceeded":                   {},
	"TooManyRequestsException":               {},
	"SlowDown":                               {},
}

// APIErrorCode returns the AWS error code found in the chain, or "".
func APIErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// IsThrottling reports whether err is an AWS throttling or capacity error
func IsThrottling(err error) bool {
	if err == nil {
		return false
	}
	_, ok := throttlingCodes[APIErrorCode(err)]
	return ok
}
