package usecase

import (
	"context"
	"fmt"
	"strings"
)

// ScopeAuthorizer decides whether actorID may write stats into scopeID.
type ScopeAuthorizer interface {
	AuthorizeScope(ctx context.Context, actorID, scopeID string) error
}

// OwnerScopeAuthorizer lets users write to their own scope. Admins may
// write anywhere.
type OwnerScopeAuthorizer struct {
	admins map[string]struct{}
}

func NewOwnerScopeAuthorizer(adminUserIDs []string) *OwnerScopeAuthorizer {
	admins := make(map[string]struct{}, len(adminUserIDs))
	for _, id := range adminUserIDs {
		if id = strings.TrimSpace(id); id != "" {
			admins[id] = struct{}{}
		}
	}
	return &OwnerScopeAuthorizer{admins: admins}
}

func (a *OwnerScopeAuthorizer) AuthorizeScope(_ context.Context, actorID, scopeID string) error {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return fmt.Errorf("%w: actor is required", ErrUnauthorized)
	}
	if actorID == strings.TrimSpace(scopeID) {
		return nil
	}
	if _, ok := a.admins[actorID]; ok {
		return nil
	}
	return fmt.Errorf("%w: actor=%s cannot write scope=%s", ErrUnauthorized, actorID, scopeID)
}

// TrustedScopeAuthorizer allows every write. The operator CLI uses it.
type TrustedScopeAuthorizer struct{}

func (TrustedScopeAuthorizer) AuthorizeScope(context.Context, string, string) error {
	return nil
}
