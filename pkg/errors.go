package pkg

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var ExposeErrorDetails = false

func init() {
	if gin.DebugMode == gin.Mode() || gin.TestMode == gin.Mode() {
		ExposeErrorDetails = true
	}
}

// ErrorCode defines a standardized error code
type ErrorCode struct {
	Code    string
	Status  int
	Message string // default message
}

var (
	// Generic app
	ErrInvalidInputCode = ErrorCode{Code: "APP_INVALID_INPUT", Status: http.StatusBadRequest, Message: "invalid input"}
	ErrServerCode       = ErrorCode{Code: "APP_INTERNAL", Status: http.StatusInternalServerError, Message: "internal server error"}

	// Order operations. The REST contract pins unknown order ids to 400,
	// matching the original surface; only unknown tool names are 404.
	ErrValidationCode    = ErrorCode{Code: "ORDER_VALIDATION", Status: http.StatusBadRequest, Message: "validation failed"}
	ErrOrderNotFoundCode = ErrorCode{Code: "ORDER_NOT_FOUND", Status: http.StatusBadRequest, Message: "order not found"}

	// Tool dispatch
	ErrUnknownToolCode   = ErrorCode{Code: "TOOL_UNKNOWN", Status: http.StatusNotFound, Message: "no such tool"}
	ErrToolExecutionCode = ErrorCode{Code: "TOOL_EXECUTION", Status: http.StatusBadRequest, Message: "tool execution failed"}

	// Completion engine
	ErrUpstreamCode = ErrorCode{Code: "ASSISTANT_UPSTREAM", Status: http.StatusInternalServerError, Message: "assistant error"}
)

type AppError struct {
	Code    ErrorCode
	Message string // public-facing message
	Cause   error  // internal cause (wrapped)
}

func (e AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}
func (e AppError) Unwrap() error { return e.Cause }

func NewAppError(code ErrorCode, msg string, cause error) error {
	return AppError{Code: code, Message: msg, Cause: cause}
}

// ErrorResponse defines the standardized error response format
type ErrorResponse struct {
	Status  int    `json:"-"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ToErrorResponse converts an error into an ErrorResponse, logging details and
// optionally exposing the internal cause. Errors that are not AppError
// collapse to a generic 500.
func ToErrorResponse(logger *zap.Logger, traceID string, err error) ErrorResponse {
	var appErr AppError
	if errors.As(err, &appErr) {
		resp := ErrorResponse{
			Status: appErr.Code.Status,
			Code:   appErr.Code.Code,
			Error:  appErr.Message,
		}
		logger.Error("application error", zap.String(TraceId, traceID), zap.Error(err))
		if ExposeErrorDetails {
			resp.Details = err.Error()
		}
		return resp
	}
	resp := ErrorResponse{
		Status: ErrServerCode.Status,
		Code:   ErrServerCode.Code,
		Error:  ErrServerCode.Message,
	}
	logger.Error("application error", zap.String(TraceId, traceID), zap.Error(err))
	if ExposeErrorDetails {
		resp.Details = err.Error()
	}
	return resp
}
