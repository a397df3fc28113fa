package apperrors

import (
	"net/http"
)

/*
Predeclared variables and factories for domain errors of the gig/bid
lifecycle. Guard-failure errors (ErrGigAlreadyAssigned, ErrBidNoLongerPending)
are expected outcomes of concurrent contention, not faults: services return
them without logging at error level.
*/

// --- Factories for wrapping repository errors ---

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// --- Bid ledger ---

var ErrGigClosed = New(
	CodeGigClosed,
	"bid",
	"Gig is not open for bidding",
	http.StatusConflict,
)

var ErrSelfBidForbidden = New(
	CodeSelfBidForbidden,
	"bid",
	"You cannot bid on your own gig",
	http.StatusBadRequest,
)

var ErrDuplicateBid = New(
	CodeDuplicateBid,
	"bid",
	"You have already bid on this gig",
	http.StatusConflict,
)

// --- Hire transactor ---

// ErrBidNotPending is the precondition failure: the target bid was already
// hired or rejected before this attempt started. A repeated hire() on an
// already-hired bid lands here deterministically.
var ErrBidNotPending = New(
	CodeBidNotPending,
	"hire",
	"Bid is not pending",
	http.StatusConflict,
)

// ErrGigAlreadyAssigned is the gig guard failure: a concurrent hire closed
// the gig between our read and our conditional write.
var ErrGigAlreadyAssigned = New(
	CodeGigAlreadyAssigned,
	"hire",
	"Someone was already hired for this gig",
	http.StatusConflict,
)

// ErrBidNoLongerPending is the bid guard failure inside the transaction:
// the bid stopped being pending after the gig guard passed.
var ErrBidNoLongerPending = New(
	CodeBidNoLongerPending,
	"hire",
	"Bid is no longer pending",
	http.StatusConflict,
)

// --- Auth ---

var ErrEmailAlreadyExists = New(
	CodeConflict,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidTokenError = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)
