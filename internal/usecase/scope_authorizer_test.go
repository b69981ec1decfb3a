package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestOwnerScopeAuthorizer(t *testing.T) {
	t.Parallel()

	auth := NewOwnerScopeAuthorizer([]string{" admin-1 ", ""})
	tests := []struct {
		name    string
		actor   string
		scope   string
		wantErr error
	}{
		{name: "owner", actor: "club-a", scope: "club-a"},
		{name: "admin", actor: "admin-1", scope: "club-a"},
		{name: "stranger", actor: "club-b", scope: "club-a", wantErr: ErrUnauthorized},
		{name: "anonymous", actor: "", scope: "club-a", wantErr: ErrUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := auth.AuthorizeScope(context.Background(), tc.actor, tc.scope)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
