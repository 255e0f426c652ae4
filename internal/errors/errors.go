package errors

import (
	"encoding/json"
	"errors"
)

// Kind classifies business failures so the boundary can pick a response for them
type Kind int

const (
	// KindUnknown is any failure which doesn't belong to the taxonomy
	KindUnknown Kind = iota
	// KindDuplicateEmail means email is already used by another active customer
	KindDuplicateEmail
	// KindDuplicatePhone means phone is already used by another active customer
	KindDuplicatePhone
	// KindIDGeneration means store failed to produce new customer id
	KindIDGeneration
	// KindCountryResolution means country demonym couldn't be resolved, lookup outages included
	KindCountryResolution
	// KindNotFound means there is no active entry for provided key
	KindNotFound
	// KindStoreWrite means store failed to persist changes
	KindStoreWrite
	// KindUnauthorized means provided credentials are not accepted
	KindUnauthorized
)

var kindNames = map[Kind]string{
	KindUnknown:           "Unknown",
	KindDuplicateEmail:    "DuplicateEmail",
	KindDuplicatePhone:    "DuplicatePhone",
	KindIDGeneration:      "IdGenerationFailure",
	KindCountryResolution: "CountryResolutionFailure",
	KindNotFound:          "NotFound",
	KindStoreWrite:        "StoreWriteFailure",
	KindUnauthorized:      "Unauthorized",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

var (
	ErrDuplicateEmail     = NewBusinessErr(KindDuplicateEmail, "email", "customer with such email already exists")
	ErrDuplicatePhone     = NewBusinessErr(KindDuplicatePhone, "phone", "customer with such phone already exists")
	ErrIDGeneration       = NewBusinessErr(KindIDGeneration, "id", "failed to generate customer id")
	ErrCountryResolution  = NewBusinessErr(KindCountryResolution, "country", "failed to resolve country demonym")
	ErrCustomerNotFound   = NewBusinessErr(KindNotFound, "id", "customer not found")
	ErrStoreWrite         = NewBusinessErr(KindStoreWrite, "customer", "failed to persist customer")
	ErrInvalidCredentials = NewBusinessErr(KindUnauthorized, "credentials", "email or password is incorrect")
	ErrUserEmailReserved  = NewBusinessErr(KindDuplicateEmail, "email", "user with such email already exists")
)

// BusinessErr is failure of business rule. Cause is kept for logs and never rendered to clients.
type BusinessErr struct {
	kind    Kind
	target  string
	message string
	cause   error
}

// NewBusinessErr builds BusinessErr
func NewBusinessErr(kind Kind, target string, msg string) *BusinessErr {
	return &BusinessErr{
		kind:    kind,
		target:  target,
		message: msg,
	}
}

func (e *BusinessErr) Error() string {
	return e.message
}

// Kind returns error kind
func (e *BusinessErr) Kind() Kind {
	return e.kind
}

// Target returns name of the field or entity which caused an error
func (e *BusinessErr) Target() string {
	return e.target
}

// Unwrap returns underlying cause if any
func (e *BusinessErr) Unwrap() error {
	return e.cause
}

// Is reports errors of the same kind as equal
func (e *BusinessErr) Is(target error) bool {
	var t *BusinessErr
	if !errors.As(target, &t) {
		return false
	}
	return t.kind == e.kind
}

// Wrap returns copy of error carrying cause
func (e *BusinessErr) Wrap(cause error) error {
	return &BusinessErr{
		kind:    e.kind,
		target:  e.target,
		message: e.message,
		cause:   cause,
	}
}

// MarshalJSON renders error without cause
func (e *BusinessErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string `json:"kind"`
		Target  string `json:"target"`
		Message string `json:"message"`
	}{Kind: e.kind.String(), Target: e.target, Message: e.message})
}

// KindOf extracts kind from error chain
func KindOf(err error) Kind {
	var bErr *BusinessErr
	if errors.As(err, &bErr) {
		return bErr.kind
	}
	return KindUnknown
}
