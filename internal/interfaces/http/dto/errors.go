package dto

import (
	"net/http"
	"strings"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation = "ERR_VALIDATION"
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
	// ErrCodeRequestTooLarge is used when the body exceeds the size limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeAccountSuspended   = "ERR_ACCOUNT_SUSPENDED"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "ERR_TOKEN_INVALID"
	ErrCodeTokenRevoked       = "ERR_TOKEN_REVOKED"
	// ErrCodeTokenMaxRefresh is used when a refresh chain is exhausted
	ErrCodeTokenMaxRefresh   = "ERR_TOKEN_MAX_REFRESH"
	ErrCodeDealerNotApproved = "ERR_DEALER_NOT_APPROVED"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
	// ErrCodeDuplicateRequest is used when an Idempotency-Key is replayed
	ErrCodeDuplicateRequest = "ERR_DUPLICATE_REQUEST"
)

// Business rule error codes
const (
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	ErrCodeOutOfStock   = "ERR_OUT_OF_STOCK"
	ErrCodeEmptyCart    = "ERR_EMPTY_CART"
	// ErrCodeFeatureDisabled is used when a site feature flag is off
	ErrCodeFeatureDisabled = "ERR_FEATURE_DISABLED"
	ErrCodeOwnRole         = "ERR_CANNOT_CHANGE_OWN_ROLE"
)

// Upload error codes
const (
	ErrCodeFileTooLarge    = "ERR_FILE_TOO_LARGE"
	ErrCodeInvalidFileType = "ERR_INVALID_FILE_TYPE"
	ErrCodeEmptyFile       = "ERR_EMPTY_FILE"
	ErrCodeInvalidFile     = "ERR_INVALID_FILE"
	// bulkPrefix marks whole-file bulk upload failures, all of which are 400s
	bulkPrefix = "ERR_BULK_"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,
	ErrCodeTokenMaxRefresh:    http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeAccountSuspended:   http.StatusForbidden,
	ErrCodeDealerNotApproved:  http.StatusForbidden,
	ErrCodeOwnRole:            http.StatusForbidden,
	ErrCodeFeatureDisabled:    http.StatusForbidden,

	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeAlreadyExists:    http.StatusConflict,
	ErrCodeConflict:         http.StatusConflict,
	ErrCodeDuplicateRequest: http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,
	ErrCodeOutOfStock:   http.StatusUnprocessableEntity,
	ErrCodeEmptyCart:    http.StatusUnprocessableEntity,

	ErrCodeFileTooLarge:    http.StatusRequestEntityTooLarge,
	ErrCodeInvalidFileType: http.StatusUnsupportedMediaType,
	ErrCodeEmptyFile:       http.StatusBadRequest,
	ErrCodeInvalidFile:     http.StatusBadRequest,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500, except bulk upload file errors which are 400.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, bulkPrefix) {
		if code == bulkPrefix+"FILE_TOO_LARGE" {
			return http.StatusRequestEntityTooLarge
		}
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps domain error codes to API codes
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":              ErrCodeNotFound,
	"ALREADY_EXISTS":         ErrCodeAlreadyExists,
	"INVALID_INPUT":          ErrCodeInvalidInput,
	"INVALID_STATE":          ErrCodeInvalidState,
	"UNAUTHORIZED":           ErrCodeUnauthorized,
	"FORBIDDEN":              ErrCodeForbidden,
	"VALIDATION_ERROR":       ErrCodeValidation,
	"BAD_REQUEST":            ErrCodeBadRequest,
	"INTERNAL_ERROR":         ErrCodeInternal,
	"INVALID_CREDENTIALS":    ErrCodeInvalidCredentials,
	"ACCOUNT_SUSPENDED":      ErrCodeAccountSuspended,
	"TOKEN_EXPIRED":          ErrCodeTokenExpired,
	"TOKEN_INVALID":          ErrCodeTokenInvalid,
	"TOKEN_REVOKED":          ErrCodeTokenRevoked,
	"TOKEN_MAX_REFRESH":      ErrCodeTokenMaxRefresh,
	"TOKEN_ERROR":            ErrCodeInternal,
	"PASSWORD_HASH_ERROR":    ErrCodeInternal,
	"INVALID_PASSWORD":       ErrCodeValidation,
	"INVALID_EMAIL":          ErrCodeValidation,
	"INVALID_PRICE":          ErrCodeValidation,
	"INVALID_STOCK_STATUS":   ErrCodeValidation,
	"CANNOT_CHANGE_OWN_ROLE": ErrCodeOwnRole,
	"OUT_OF_STOCK":           ErrCodeOutOfStock,
	"EMPTY_CART":             ErrCodeEmptyCart,
	"EMPTY_ORDER":            ErrCodeEmptyCart,
	"FEATURE_DISABLED":       ErrCodeFeatureDisabled,
	"FILE_TOO_LARGE":         ErrCodeFileTooLarge,
	"INVALID_FILE_TYPE":      ErrCodeInvalidFileType,
	"EMPTY_FILE":             ErrCodeEmptyFile,
	"INVALID_FILE":           ErrCodeInvalidFile,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format, or unknown, are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
