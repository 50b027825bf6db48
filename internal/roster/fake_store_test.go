package roster

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/yakoovad/startup-roster/internal/model"
)

var errStoreDown = errors.New("store down")

type fakeStore struct {
	members   map[string]*model.Cofounder
	teamSizes map[string]int
	nextID    int

	// failOn makes the named operation fail with errStoreDown.
	failOn string
	writes []string
}

func newFakeStore(members ...*model.Cofounder) *fakeStore {
	s := &fakeStore{
		members:   make(map[string]*model.Cofounder),
		teamSizes: make(map[string]int),
	}
	for _, m := range members {
		s.members[m.ID] = m
	}
	return s
}

func (s *fakeStore) fail(op string) error {
	if s.failOn == op {
		return errStoreDown
	}
	return nil
}

func (s *fakeStore) CofounderExists(_ context.Context, email string) (bool, error) {
	if err := s.fail("exists"); err != nil {
		return false, err
	}
	for _, m := range s.members {
		if m.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) FindMember(_ context.Context, startupID, id string) (*model.Cofounder, error) {
	if err := s.fail("find"); err != nil {
		return nil, err
	}
	m, ok := s.members[id]
	if !ok || m.StartupID != startupID {
		return nil, ErrMemberNotFound
	}
	return m, nil
}

func (s *fakeStore) CreateMember(_ context.Context, startupID, name, email string) (*model.Cofounder, error) {
	if err := s.fail("create"); err != nil {
		return nil, err
	}
	s.nextID++
	m := &model.Cofounder{ID: fmt.Sprintf("new-%d", s.nextID), StartupID: startupID, Name: name, Email: email}
	s.members[m.ID] = m
	s.writes = append(s.writes, "create "+email)
	return m, nil
}

func (s *fakeStore) RenameMember(_ context.Context, id, name string) error {
	if err := s.fail("rename"); err != nil {
		return err
	}
	s.members[id].Name = name
	s.writes = append(s.writes, "rename "+id)
	return nil
}

func (s *fakeStore) DeleteMember(_ context.Context, id string) error {
	if err := s.fail("delete"); err != nil {
		return err
	}
	delete(s.members, id)
	s.writes = append(s.writes, "delete "+id)
	return nil
}

func (s *fakeStore) CountMembers(_ context.Context, startupID string) (int, error) {
	if err := s.fail("count"); err != nil {
		return 0, err
	}
	n := 0
	for _, m := range s.members {
		if m.StartupID == startupID {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) UpdateTeamSize(_ context.Context, startupID string, size int) error {
	if err := s.fail("team_size"); err != nil {
		return err
	}
	s.teamSizes[startupID] = size
	s.writes = append(s.writes, fmt.Sprintf("team_size %d", size))
	return nil
}

func newEntry(name, email string) NewEntry {
	return NewEntry{Contact: Contact{Name: name, Email: email}}
}

func existing(id, name, email string, del bool) ExistingEntry {
	return ExistingEntry{ID: id, Contact: Contact{Name: name, Email: email}, Delete: del}
}
