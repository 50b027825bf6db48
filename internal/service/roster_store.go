package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/yakoovad/startup-roster/internal/model"
	"github.com/yakoovad/startup-roster/internal/repository"
	"github.com/yakoovad/startup-roster/internal/roster"
)

// rosterStore adapts the repositories to roster.Store.
type rosterStore struct {
	startups   repository.StartupRepository
	cofounders repository.CofounderRepository
}

var _ roster.Store = (*rosterStore)(nil)

func (s *rosterStore) CofounderExists(ctx context.Context, email string) (bool, error) {
	return s.cofounders.ExistsByEmail(ctx, email)
}

func (s *rosterStore) FindMember(ctx context.Context, startupID, id string) (*model.Cofounder, error) {
	c, err := s.cofounders.Get(ctx, startupID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, roster.ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return toModelCofounder(c), nil
}

func (s *rosterStore) CreateMember(ctx context.Context, startupID, name, email string) (*model.Cofounder, error) {
	c := &repository.Cofounder{
		StartupID: startupID,
		Name:      name,
		Email:     email,
	}
	if err := s.cofounders.Create(ctx, c); err != nil {
		return nil, err
	}
	return toModelCofounder(c), nil
}

func (s *rosterStore) RenameMember(ctx context.Context, id, name string) error {
	return s.cofounders.UpdateName(ctx, id, name)
}

func (s *rosterStore) DeleteMember(ctx context.Context, id string) error {
	return s.cofounders.Delete(ctx, id)
}

func (s *rosterStore) CountMembers(ctx context.Context, startupID string) (int, error) {
	return s.cofounders.CountByStartup(ctx, startupID)
}

func (s *rosterStore) UpdateTeamSize(ctx context.Context, startupID string, size int) error {
	return s.startups.UpdateTeamSize(ctx, startupID, size)
}

func toModelCofounder(c *repository.Cofounder) *model.Cofounder {
	return &model.Cofounder{
		ID:        c.ID,
		StartupID: c.StartupID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}
