package errors

import "errors"

// Kind is the closed set of failure classes the core distinguishes.
type Kind string

const (
	KindUnclassified            Kind = "unclassified"
	KindNotAuthenticated        Kind = "not_authenticated"
	KindUnknownUser             Kind = "unknown_user"
	KindInsufficientPrivilege   Kind = "insufficient_privilege"
	KindValidation              Kind = "validation"
	KindNotFound                Kind = "not_found"
	KindMissingProductReference Kind = "missing_product_reference"
)

// IsAuthorization reports whether the kind is an access-gate denial.
func (k Kind) IsAuthorization() bool {
	switch k {
	case KindNotAuthenticated, KindUnknownUser, KindInsufficientPrivilege:
		return true
	default:
		return false
	}
}

func (k Kind) String() string { return string(k) }

// Kinded is implemented by errors that carry a Kind.
type Kinded interface {
	error
	ErrorKind() Kind
}

// KindError is a sentinel error tagged with a kind. Compare with errors.Is.
type KindError struct {
	kind    Kind
	message string
}

// NewKindError builds a sentinel of the given kind.
func NewKindError(kind Kind, message string) *KindError {
	return &KindError{kind: kind, message: message}
}

func (e *KindError) Error() string { return e.message }

// ErrorKind returns the kind carried by the sentinel.
func (e *KindError) ErrorKind() Kind { return e.kind }

// KindOf classifies err by the first Kinded error in its chain.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var kinded Kinded
	if errors.As(err, &kinded) {
		return kinded.ErrorKind()
	}
	return KindUnclassified
}
