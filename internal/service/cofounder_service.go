package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/yakoovad/startup-roster/internal/db"
	"github.com/yakoovad/startup-roster/internal/model"
	"github.com/yakoovad/startup-roster/internal/repository"
	"github.com/yakoovad/startup-roster/internal/roster"
	"github.com/yakoovad/startup-roster/pkg/logger"
	"go.uber.org/zap"
)

type CofounderService struct {
	tx db.Transactor

	startups   repository.StartupRepository
	cofounders repository.CofounderRepository
}

func NewCofounderService(tx db.Transactor) *CofounderService {
	return &CofounderService{
		tx: tx,
	}
}

// GetRoster returns the editable cofounders of a startup. A startup without
// cofounders gets blank rows sized to its recorded team.
func (c *CofounderService) GetRoster(ctx context.Context, startupID string) (*model.Roster, *Error) {
	l := logger.FromContext(ctx)
	l.Debug("getting roster", zap.String("startup_id", startupID))

	startup, svcErr := c.getStartup(ctx, startupID)
	if svcErr != nil {
		return nil, svcErr
	}

	members, err := c.cofounders.ListByStartup(ctx, startupID)
	if err != nil {
		l.Error("failed to list cofounders", zap.String("startup_id", startupID), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to list cofounders")
	}

	entries := make([]roster.Entry, 0, len(members))
	for _, m := range members {
		entries = append(entries, roster.ExistingEntry{
			ID:      m.ID,
			Contact: roster.Contact{Name: m.Name, Email: m.Email},
		})
	}

	return &model.Roster{
		StartupID:  startup.ID,
		TeamSize:   startup.TeamSize,
		Cofounders: roster.ToModel(roster.Prepopulate(entries, startup.TeamSize)),
	}, nil
}

// UpdateRoster validates the submitted cofounders as one batch and, when valid,
// applies it in a single transaction. It returns the roster as stored afterwards.
func (c *CofounderService) UpdateRoster(ctx context.Context, startupID string, rows []*model.CofounderEntry) (*model.Roster, *Error) {
	l := logger.FromContext(ctx)
	l.Info("updating roster", zap.String("startup_id", startupID), zap.Int("entries", len(rows)))

	startup, svcErr := c.getStartup(ctx, startupID)
	if svcErr != nil {
		return nil, svcErr
	}

	store := &rosterStore{startups: c.startups, cofounders: c.cofounders}
	entries := roster.Prepopulate(roster.FromModel(rows), startup.TeamSize)

	report, err := roster.NewValidator(store).Validate(ctx, entries)
	if err != nil {
		l.Error("failed to validate roster", zap.String("startup_id", startupID), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to validate roster")
	}
	if !report.OK() {
		l.Info("roster rejected",
			zap.String("startup_id", startupID),
			zap.Strings("base", report.Base),
			zap.Int("entries_with_errors", len(report.Entries)))
		return nil, NewError(ErrorCodeInvalidRoster, "roster is invalid").WithDetails(report)
	}

	var size int
	err = c.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		size, err = roster.NewReconciler(store).Apply(txCtx, startupID, entries)
		return err
	})
	switch {
	case errors.Is(err, roster.ErrStaleReference):
		l.Warn("roster references a removed cofounder", zap.String("startup_id", startupID), zap.Error(err))
		return nil, NewError(ErrorCodeStaleRoster, "roster changed since it was loaded, reload and try again")
	case errors.Is(err, repository.ErrAlreadyExists):
		l.Warn("cofounder email taken concurrently", zap.String("startup_id", startupID), zap.Error(err))
		return nil, NewError(ErrorCodeEmailTaken, "a cofounder email was registered by another application")
	case err != nil:
		l.Error("failed to apply roster", zap.String("startup_id", startupID), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to update cofounders")
	}

	l.Debug("roster updated", zap.String("startup_id", startupID), zap.Int("team_size", size))

	return c.GetRoster(ctx, startupID)
}

func (c *CofounderService) getStartup(ctx context.Context, startupID string) (*repository.Startup, *Error) {
	l := logger.FromContext(ctx)

	startup, err := c.startups.Get(ctx, startupID)
	if errors.Is(err, repository.ErrNotFound) {
		l.Warn("startup not found", zap.String("startup_id", startupID))
		return nil, NewError(ErrorCodeNotFound, "startup not found")
	}
	if err != nil {
		l.Error("failed to get startup", zap.String("startup_id", startupID), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to get startup")
	}
	return startup, nil
}

func (c *CofounderService) WithStartupRepo(r repository.StartupRepository) *CofounderService {
	c.startups = r
	return c
}

func (c *CofounderService) WithCofounderRepo(r repository.CofounderRepository) *CofounderService {
	c.cofounders = r
	return c
}
