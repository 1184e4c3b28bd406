package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPeriod        ErrorCode = 102
	ErrCodeMissingParameter     ErrorCode = 103
	ErrCodeInvalidVersion       ErrorCode = 104
	ErrCodeInvalidType          ErrorCode = 105

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302

	// Numeric and index contract errors (400-499)
	ErrCodeInvalidOperand   ErrorCode = 400
	ErrCodeDivisionByZero   ErrorCode = 401
	ErrCodeIndexOutOfBounds ErrorCode = 402
	ErrCodeDomainError      ErrorCode = 403

	// Trading record and criteria errors (500-599)
	ErrCodePositionNotFound     ErrorCode = 500
	ErrCodeInvalidTrade         ErrorCode = 501
	ErrCodeCriterionCalculation ErrorCode = 502
)
