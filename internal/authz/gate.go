package authz

import (
	"context"
	"fmt"
)

// Gate is the single decision point in front of every protected action.
type Gate struct {
	registry *Registry
	resolver *Resolver
}

// NewGate constructs a Gate.
func NewGate(registry *Registry, resolver *Resolver) *Gate {
	return &Gate{registry: registry, resolver: resolver}
}

// Authorize decides whether the credential holder may perform task. A nil
// error is Allow; every failure mode stays distinguishable for the caller:
//
//   - ErrTaskNotRegistered: the route referenced an unknown task. Server
//     fault, surfaced loudly, never a 403.
//   - authentication-class errors from the resolver: not logged in.
//   - ErrLevelTooLow: logged in, insufficient level.
//
// The check runs fresh on every call. There is no memoized state and no
// session-scoped cache, so registry or level changes apply to the very next
// request.
func (g *Gate) Authorize(ctx context.Context, task Task, credential string) (Principal, error) {
	required, err := g.registry.GetRequiredLevel(ctx, task)
	if err != nil {
		return Principal{}, err
	}
	principal, err := g.resolver.Resolve(ctx, credential)
	if err != nil {
		return Principal{}, err
	}
	if !principal.Level.Satisfies(required) {
		return principal, fmt.Errorf("%w: task %s requires %d, principal has %d",
			ErrLevelTooLow, task, required, principal.Level)
	}
	return principal, nil
}

// AuthorizeAll requires every task in the list. An empty list resolves the
// principal and allows.
func (g *Gate) AuthorizeAll(ctx context.Context, tasks []Task, credential string) (Principal, error) {
	if len(tasks) == 0 {
		return g.resolver.Resolve(ctx, credential)
	}
	principal, err := g.Authorize(ctx, tasks[0], credential)
	if err != nil {
		return principal, err
	}
	for _, task := range tasks[1:] {
		required, err := g.registry.GetRequiredLevel(ctx, task)
		if err != nil {
			return principal, err
		}
		if !principal.Level.Satisfies(required) {
			return principal, fmt.Errorf("%w: task %s requires %d, principal has %d",
				ErrLevelTooLow, task, required, principal.Level)
		}
	}
	return principal, nil
}
