package roster

import (
	"context"

	"github.com/pkg/errors"
	"github.com/yakoovad/startup-roster/pkg/logger"
	"go.uber.org/zap"
)

// Reconciler applies a validated batch to the persisted roster.
type Reconciler struct {
	store Store
}

func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store}
}

// Apply creates, renames and deletes cofounders in batch order, then sets the
// startup's team size to the resulting member count, which it returns.
// It stops at the first store failure without undoing earlier steps.
func (r *Reconciler) Apply(ctx context.Context, startupID string, entries []Entry) (int, error) {
	l := logger.FromContext(ctx)

	for _, entry := range entries {
		if err := r.applyEntry(ctx, startupID, entry); err != nil {
			return 0, err
		}
	}

	size, err := r.store.CountMembers(ctx, startupID)
	if err != nil {
		return 0, errors.Wrap(err, "count cofounders")
	}

	if err = r.store.UpdateTeamSize(ctx, startupID, size); err != nil {
		return 0, errors.Wrap(err, "update team size")
	}

	l.Debug("roster applied",
		zap.String("startup_id", startupID),
		zap.Int("entries", len(entries)),
		zap.Int("team_size", size))

	return size, nil
}

func (r *Reconciler) applyEntry(ctx context.Context, startupID string, entry Entry) error {
	switch e := entry.(type) {
	case NewEntry:
		if _, err := r.store.CreateMember(ctx, startupID, e.Name, e.Email); err != nil {
			return errors.Wrapf(err, "create cofounder %s", e.Email)
		}
		return nil

	case ExistingEntry:
		member, err := r.store.FindMember(ctx, startupID, e.ID)
		if errors.Is(err, ErrMemberNotFound) {
			return errors.Wrapf(ErrStaleReference, "cofounder %s", e.ID)
		}
		if err != nil {
			return errors.Wrapf(err, "find cofounder %s", e.ID)
		}

		if e.Delete {
			return errors.Wrapf(r.store.DeleteMember(ctx, member.ID), "delete cofounder %s", member.ID)
		}
		return errors.Wrapf(r.store.RenameMember(ctx, member.ID, e.Name), "rename cofounder %s", member.ID)

	default:
		return errors.Errorf("unsupported roster entry %T", entry)
	}
}
