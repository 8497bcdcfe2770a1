package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	TraceIDKey      = "trace_id"
	UserIDKey       = "user_id"
	UserEmailKey    = "user_email"
	ErrorDetailsKey = "expose_error_details"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
	Details string `json:"details,omitempty"`
}

var errorCodes = map[int]string{
	http.StatusBadRequest:          "VALIDATION_ERROR",
	http.StatusUnauthorized:        "UNAUTHORIZED",
	http.StatusForbidden:           "FORBIDDEN",
	http.StatusNotFound:            "NOT_FOUND",
	http.StatusConflict:            "CONFLICT",
	http.StatusServiceUnavailable:  "SERVICE_UNAVAILABLE",
	http.StatusInternalServerError: "INTERNAL_ERROR",
}

func ErrorCode(status int) string {
	if code, ok := errorCodes[status]; ok {
		return code
	}
	return "ERROR"
}

func RespondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

func RespondError(c *gin.Context, status int, message string) {
	respond(c, status, ErrorCode(status), message, nil)
}

func respond(c *gin.Context, status int, code, message string, cause error) {
	resp := ErrorResponse{
		Error:   code,
		Message: message,
		TraceID: c.GetString(TraceIDKey),
	}
	if cause != nil && c.GetBool(ErrorDetailsKey) {
		resp.Details = cause.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}

// HandleServiceError logs err and maps it onto the HTTP error contract.
func HandleServiceError(c *gin.Context, err error) {
	traceID := c.GetString(TraceIDKey)

	var mismatch *DurationMismatchError
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, ErrEmailAlreadyExists):
		respond(c, http.StatusBadRequest, "EMAIL_EXISTS", "An account with this email already exists", nil)
	case errors.Is(err, ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	case errors.Is(err, ErrAccountNotFound):
		respond(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	case errors.Is(err, ErrTripNotFound):
		respond(c, http.StatusNotFound, "NOT_FOUND", "Trip not found", nil)
	case errors.Is(err, ErrItineraryNotFound):
		respond(c, http.StatusNotFound, "NOT_FOUND", "Itinerary not found", nil)
	case errors.Is(err, ErrItemNotFound):
		respond(c, http.StatusNotFound, "NOT_FOUND", "Itinerary item not found", nil)
	case errors.Is(err, ErrGenerationInProgress):
		respond(c, http.StatusConflict, "GENERATION_IN_PROGRESS", "An itinerary is already being generated for this trip", nil)
	case errors.Is(err, ErrQueueFull):
		respond(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Too many itineraries are being generated, try again shortly", nil)
	case errors.Is(err, ErrUpstreamAuth), errors.Is(err, ErrUpstreamUnavailable), errors.Is(err, ErrUpstreamEmptyResponse):
		zap.L().Error("llm service error", zap.String("trace_id", traceID), zap.Error(err))
		respond(c, http.StatusInternalServerError, "AI_SERVICE_ERROR", "The AI service is unavailable, please try again later", err)
	case errors.As(err, &mismatch):
		zap.L().Warn("itinerary duration mismatch", zap.String("trace_id", traceID),
			zap.Int("expected", mismatch.Expected), zap.Int("actual", mismatch.Actual))
		respond(c, http.StatusInternalServerError, "DURATION_MISMATCH", mismatch.Error(), nil)
	case errors.Is(err, ErrMalformedResponse):
		zap.L().Error("malformed llm response", zap.String("trace_id", traceID), zap.Error(err))
		respond(c, http.StatusInternalServerError, "MALFORMED_RESPONSE", "The AI returned a response that could not be parsed", err)
	case errors.Is(err, ErrEmptyItinerary):
		respond(c, http.StatusInternalServerError, "EMPTY_ITINERARY", "The AI returned an itinerary without any days", nil)
	case errors.Is(err, ErrInvalidStructure), errors.Is(err, ErrAIReportedError):
		zap.L().Error("invalid itinerary structure", zap.String("trace_id", traceID), zap.Error(err))
		respond(c, http.StatusInternalServerError, "INVALID_ITINERARY", "The AI returned an itinerary with an invalid structure", err)
	case errors.Is(err, ErrDatabaseError):
		zap.L().Error("database error", zap.String("trace_id", traceID), zap.Error(err))
		respond(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", err)
	default:
		zap.L().Error("unhandled service error", zap.String("trace_id", traceID), zap.Error(err))
		respond(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", err)
	}
}
