package authz

import "errors"

// Authentication-class failures: the caller is not (or no longer) a known
// logged-in principal. Distinct from authorization failures so handlers can
// answer 401 instead of 403.
var (
	// ErrMissingCredential means no session credential was presented.
	ErrMissingCredential = errors.New("authz: no credential presented")
	// ErrInvalidCredential means the credential failed verification or expired.
	ErrInvalidCredential = errors.New("authz: invalid or expired credential")
	// ErrPrincipalNotFound means the identity in the credential no longer
	// exists in the backing store.
	ErrPrincipalNotFound = errors.New("authz: principal not found")
	// ErrPrincipalInactive means the account was deactivated after login.
	ErrPrincipalInactive = errors.New("authz: principal deactivated")
)

// Authorization-class failure: a valid principal without a sufficient level.
var ErrLevelTooLow = errors.New("authz: insufficient level")

// Registry and data-integrity faults. These are loud server-side conditions,
// never a user-facing 403.
var (
	// ErrTaskNotRegistered means a handler referenced a task the registry has
	// never seen. Programming error.
	ErrTaskNotRegistered = errors.New("authz: task not registered")
	// ErrAmbiguousPrincipal means more than one backing record matched one
	// identity. Data-integrity bug: reported, never resolved by picking one.
	ErrAmbiguousPrincipal = errors.New("authz: multiple records match principal")
	// ErrImmutableTask rejects any attempt to change permissions_view.
	ErrImmutableTask = errors.New("authz: task level is immutable")
	// ErrInvalidLevel rejects levels outside [0,3].
	ErrInvalidLevel = errors.New("authz: level out of range")
)

// IsAuthentication reports whether err is an authentication-class failure.
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrMissingCredential) ||
		errors.Is(err, ErrInvalidCredential) ||
		errors.Is(err, ErrPrincipalNotFound) ||
		errors.Is(err, ErrPrincipalInactive)
}
