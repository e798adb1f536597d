package responses

import (
	"errors"
	"net/http"

	"nasa-server/services/space-tools/utils/platformerrors"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Code          string `json:"code"` // UUID from PlatformError
	Error         string `json:"error"`
	ErrorInstance error  `json:"-"`
	RequestID     string `json:"request_id,omitempty"`
}

// HandleError handles domain errors and returns appropriate HTTP responses
// The message parameter is used directly as the error message in the response
// Status code is automatically determined from the error type
func HandleError(reqCtx *gin.Context, err error, message string) {
	var domainErr *platformerrors.PlatformError
	if errors.As(err, &domainErr) {
		statusCode := platformerrors.ErrorTypeToHTTPStatus(domainErr.GetErrorType())

		errResp := ErrorResponse{
			Code:          domainErr.GetUUID(),
			Error:         message,
			ErrorInstance: domainErr,
			RequestID:     domainErr.GetRequestID(),
		}

		reqCtx.AbortWithStatusJSON(statusCode, errResp)
		return
	}

	// assign generic error response for non-domain errors
	errResp := ErrorResponse{
		Error:         message,
		ErrorInstance: err,
	}
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, errResp)
}

// HandleNewError creates a new typed error at the route layer and handles it
// This is a convenience function for route-level validations and errors
// The uuid parameter should be provided from the route for error tracking
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string, uuid string) {
	ctx := reqCtx.Request.Context()
	err := platformerrors.NewError(ctx, platformerrors.LayerRoute, errorType, message, nil, uuid)

	statusCode := platformerrors.ErrorTypeToHTTPStatus(err.GetErrorType())

	errResp := ErrorResponse{
		Code:          err.GetUUID(),
		Error:         message,
		ErrorInstance: err,
		RequestID:     err.GetRequestID(),
	}

	reqCtx.AbortWithStatusJSON(statusCode, errResp)
}

type GeneralResponse[T any] struct {
	Status string `json:"status"`
	Result T      `json:"result"`
}
