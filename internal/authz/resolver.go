package authz

import (
	"context"
	"fmt"
	"strings"
)

// CredentialVerifier checks a signed credential and returns the identity it
// is bound to. The verifier enforces expiry; the resolver trusts it to.
type CredentialVerifier interface {
	Verify(credential string) (username string, err error)
}

// PrincipalStore reads principal records from the backing store.
type PrincipalStore interface {
	FindPrincipal(ctx context.Context, username string) (Principal, error)
}

// Resolver maps a request credential to a Principal with its current level.
//
// The level is fetched from the store on every call. The credential proves
// identity only, so a level downgrade applies on the very next gated request
// even while the credential itself is still valid.
type Resolver struct {
	verifier CredentialVerifier
	store    PrincipalStore
}

// NewResolver constructs a Resolver.
func NewResolver(verifier CredentialVerifier, store PrincipalStore) *Resolver {
	return &Resolver{verifier: verifier, store: store}
}

// Resolve verifies the credential and loads the matching principal.
func (r *Resolver) Resolve(ctx context.Context, credential string) (Principal, error) {
	if strings.TrimSpace(credential) == "" {
		return Principal{}, ErrMissingCredential
	}
	username, err := r.verifier.Verify(credential)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	return r.store.FindPrincipal(ctx, username)
}
