package analyzer

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/morf/internal/gateway"
)

// ReconciliationErrorCode categorizes protocol violations in the event stream.
type ReconciliationErrorCode string

const (
	// ErrCodeIndexBeforeBlock: an index event arrived before any analysis block.
	ErrCodeIndexBeforeBlock ReconciliationErrorCode = "INDEX_BEFORE_BLOCK"

	// ErrCodeOrdinalOutOfRange: ordinal - deleted falls outside the word list.
	ErrCodeOrdinalOutOfRange ReconciliationErrorCode = "ORDINAL_OUT_OF_RANGE"

	// ErrCodeContinuationOrder: a continuation does not follow its anchor.
	ErrCodeContinuationOrder ReconciliationErrorCode = "CONTINUATION_ORDER"

	// ErrCodeDuplicateResolution: a record would receive a second block.
	ErrCodeDuplicateResolution ReconciliationErrorCode = "DUPLICATE_RESOLUTION"

	// ErrCodeUnknownEvent: the event is neither an index nor a block.
	ErrCodeUnknownEvent ReconciliationErrorCode = "UNKNOWN_EVENT"

	// ErrCodeEventBudgetExceeded: the stream is longer than the call allows.
	ErrCodeEventBudgetExceeded ReconciliationErrorCode = "EVENT_BUDGET_EXCEEDED"
)

// noPosition marks "no record resolved since the last analysis block".
const noPosition = -1

// ReconciliationError reports that the engine's event stream cannot be
// mapped onto the word list. No partial output accompanies it.
type ReconciliationError struct {
	Code    ReconciliationErrorCode
	Message string

	// Ordinal is the engine ordinal of the offending index event.
	Ordinal int
	// Position is Ordinal - Deleted.
	Position int
	// ListLength is the word list length when the event arrived.
	ListLength int
	// Deleted is the number of records merged away so far.
	Deleted int
	// Anchor is the position that claimed the current block, or -1.
	Anchor int
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("%s: %s (ordinal=%d, position=%d, len=%d, deleted=%d, anchor=%d)",
		e.Code, e.Message, e.Ordinal, e.Position, e.ListLength, e.Deleted, e.Anchor)
}

// IsReconciliationError returns true if err is a ReconciliationError.
// Uses errors.As to handle wrapped errors.
func IsReconciliationError(err error) bool {
	var re *ReconciliationError
	return errors.As(err, &re)
}

// IsConfigurationError returns true if the gateway rejected the flag set.
func IsConfigurationError(err error) bool {
	return gateway.IsConfigurationError(err)
}

// ErrEmptyToken is returned when a sentence contains an empty string.
var ErrEmptyToken = errors.New("empty token")

// Outcome codes for errors that are not reconciliation errors.
const (
	CodeConfiguration = "CONFIGURATION_REJECTED"
	CodeProtocol      = "ENGINE_PROTOCOL"
	CodeEmptyToken    = "EMPTY_TOKEN"
	CodeCanceled      = "CANCELED"
	CodeInternal      = "INTERNAL"
)

// ErrorCode classifies err into a stable outcome code, "" for nil.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var re *ReconciliationError
	switch {
	case errors.As(err, &re):
		return string(re.Code)
	case gateway.IsConfigurationError(err):
		return CodeConfiguration
	case gateway.IsProtocolError(err):
		return CodeProtocol
	case errors.Is(err, ErrEmptyToken):
		return CodeEmptyToken
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeCanceled
	default:
		return CodeInternal
	}
}
