package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientStock indicates a sale asked for more units than are on hand.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrOverPayment indicates the amount paid at sale time exceeds the sale total.
var ErrOverPayment = errors.New("amount paid exceeds sale total")

// ErrNoOutstandingBalance indicates a payment was submitted for a customer with nothing owed.
var ErrNoOutstandingBalance = errors.New("no outstanding balance")

// ErrTransactionFailed indicates the storage transaction was rolled back.
var ErrTransactionFailed = errors.New("transaction failed")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// AppError pairs one of the sentinel kinds above with a human readable message
// and an optional underlying cause. errors.Is matches both the kind and the cause.
type AppError struct {
	Kind    error
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// New builds an AppError of the given kind.
func New(kind error, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an AppError of the given kind around an underlying cause.
func Wrap(kind error, err error, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// NewValidation aggregates field level problems into one ValidationFailed error.
// Returns nil when there is nothing to report.
func NewValidation(problems ...string) error {
	if len(problems) == 0 {
		return nil
	}
	return &AppError{Kind: ErrValidation, Message: strings.Join(problems, ", ")}
}

// NewInsufficientStock names the product along with the available and requested quantities.
func NewInsufficientStock(productName string, available, requested int) *AppError {
	return New(ErrInsufficientStock, "Insufficient stock for product %s. Available: %d, Requested: %d", productName, available, requested)
}

// Kind returns the machine checkable name of err's kind.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrInsufficientStock):
		return "InsufficientStock"
	case errors.Is(err, ErrOverPayment):
		return "OverPayment"
	case errors.Is(err, ErrNoOutstandingBalance):
		return "NoOutstandingBalance"
	case errors.Is(err, ErrValidation):
		return "ValidationFailed"
	case errors.Is(err, ErrDuplicate):
		return "Duplicate"
	case errors.Is(err, ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, ErrTransactionFailed):
		return "TransactionFailed"
	default:
		return "Internal"
	}
}

// Message returns the display message for err. For an AppError this is its
// Message without the wrapped cause, except for TransactionFailed where the
// storage error text follows the message.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Kind == ErrTransactionFailed && appErr.Err != nil {
			return appErr.Error()
		}
		return appErr.Message
	}
	return err.Error()
}
