package apperrors

// ErrorCode is a machine-readable error kind returned to API clients.
type ErrorCode string

const (
	// System errors
	CodeInternalError  ErrorCode = "INTERNAL_ERROR"
	CodeTransientStore ErrorCode = "TRANSIENT_STORE_ERROR"

	// Generic business-logic codes
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"

	// Authentication / authorization
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Bid ledger
	CodeGigClosed        ErrorCode = "GIG_CLOSED"
	CodeSelfBidForbidden ErrorCode = "SELF_BID_FORBIDDEN"
	CodeDuplicateBid     ErrorCode = "DUPLICATE_BID"

	// Hire transactor. The two guard-failure codes are distinct on purpose:
	// GIG_ALREADY_ASSIGNED means another hire won the gig, BID_NO_LONGER_PENDING
	// means this particular bid was resolved under us mid-transaction. Callers
	// render them differently.
	CodeBidNotPending      ErrorCode = "BID_NOT_PENDING"
	CodeGigAlreadyAssigned ErrorCode = "GIG_ALREADY_ASSIGNED"
	CodeBidNoLongerPending ErrorCode = "BID_NO_LONGER_PENDING"
)
