package service

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yakoovad/startup-roster/internal/repository"
)

type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type MockStartupRepository struct {
	mock.Mock
}

func (m *MockStartupRepository) Create(ctx context.Context, startup *repository.Startup) error {
	args := m.Called(ctx, startup)
	return args.Error(0)
}

func (m *MockStartupRepository) Get(ctx context.Context, id string) (*repository.Startup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Startup), args.Error(1)
}

func (m *MockStartupRepository) UpdateTeamSize(ctx context.Context, id string, size int) error {
	args := m.Called(ctx, id, size)
	return args.Error(0)
}

type MockCofounderRepository struct {
	mock.Mock
}

func (m *MockCofounderRepository) Create(ctx context.Context, cofounder *repository.Cofounder) error {
	args := m.Called(ctx, cofounder)
	return args.Error(0)
}

func (m *MockCofounderRepository) Get(ctx context.Context, startupID, id string) (*repository.Cofounder, error) {
	args := m.Called(ctx, startupID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Cofounder), args.Error(1)
}

func (m *MockCofounderRepository) ListByStartup(ctx context.Context, startupID string) ([]*repository.Cofounder, error) {
	args := m.Called(ctx, startupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.Cofounder), args.Error(1)
}

func (m *MockCofounderRepository) CountByStartup(ctx context.Context, startupID string) (int, error) {
	args := m.Called(ctx, startupID)
	return args.Int(0), args.Error(1)
}

func (m *MockCofounderRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockCofounderRepository) UpdateName(ctx context.Context, id, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockCofounderRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
