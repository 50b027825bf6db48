package roster

import (
	"context"

	"github.com/pkg/errors"
	"github.com/yakoovad/startup-roster/internal/model"
)

var (
	// ErrMemberNotFound is returned by Store.FindMember for unknown ids.
	ErrMemberNotFound = errors.New("cofounder not found")
	// ErrStaleReference means an entry points at a cofounder that no longer exists.
	ErrStaleReference = errors.New("stale cofounder reference")
)

// EmailLookup answers whether any cofounder of any startup already uses an email.
type EmailLookup interface {
	CofounderExists(ctx context.Context, email string) (bool, error)
}

// Store is the persistence needed to apply a roster.
type Store interface {
	EmailLookup

	FindMember(ctx context.Context, startupID, id string) (*model.Cofounder, error)
	CreateMember(ctx context.Context, startupID, name, email string) (*model.Cofounder, error)
	RenameMember(ctx context.Context, id, name string) error
	DeleteMember(ctx context.Context, id string) error
	CountMembers(ctx context.Context, startupID string) (int, error)
	UpdateTeamSize(ctx context.Context, startupID string, size int) error
}
