package roster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yakoovad/startup-roster/internal/model"
)

func founders() []*model.Cofounder {
	return []*model.Cofounder{
		{ID: "m0", StartupID: "s1", Name: "Founder", Email: "founder@x.com"},
		{ID: "m1", StartupID: "s1", Name: "Mia", Email: "mia@x.com"},
		{ID: "m2", StartupID: "s1", Name: "Bo", Email: "bo@x.com"},
		{ID: "o1", StartupID: "s2", Name: "Other", Email: "other@x.com"},
	}
}

func TestReconciler_Apply(t *testing.T) {
	tests := []struct {
		name            string
		entries         []Entry
		failOn          string
		expectedErr     error
		expectedSize    int
		expectedWrites  []string
		expectedMembers map[string]string
	}{
		{
			name:           "create rename delete",
			entries:        []Entry{existing("m1", "Mia R", "ignored@x.com", false), existing("m2", "Bo", "bo@x.com", true), newEntry("Al", "al@x.com")},
			expectedSize:   3,
			expectedWrites: []string{"rename m1", "delete m2", "create al@x.com", "team_size 3"},
			expectedMembers: map[string]string{
				"m0":    "Founder <founder@x.com>",
				"m1":    "Mia R <mia@x.com>",
				"new-1": "Al <al@x.com>",
			},
		},
		{
			name:           "stale reference",
			entries:        []Entry{existing("gone", "X", "x@x.com", false)},
			expectedErr:    ErrStaleReference,
			expectedWrites: nil,
		},
		{
			name:           "cofounder of another startup is stale",
			entries:        []Entry{existing("o1", "Other", "other@x.com", true)},
			expectedErr:    ErrStaleReference,
			expectedWrites: nil,
		},
		{
			name:           "store failure keeps earlier writes",
			entries:        []Entry{existing("m1", "Mia R", "mia@x.com", false), newEntry("Al", "al@x.com")},
			failOn:         "create",
			expectedErr:    errStoreDown,
			expectedWrites: []string{"rename m1"},
		},
		{
			name:           "team size failure",
			entries:        []Entry{newEntry("Al", "al@x.com")},
			failOn:         "team_size",
			expectedErr:    errStoreDown,
			expectedWrites: []string{"create al@x.com"},
		},
		{
			name:           "lookup failure",
			entries:        []Entry{existing("m1", "Mia", "mia@x.com", true)},
			failOn:         "find",
			expectedErr:    errStoreDown,
			expectedWrites: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore(founders()...)
			store.failOn = tt.failOn

			size, err := NewReconciler(store).Apply(context.Background(), "s1", tt.entries)

			assert.Equal(t, tt.expectedWrites, store.writes)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Zero(t, size)
				_, written := store.teamSizes["s1"]
				assert.False(t, written)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedSize, size)
			assert.Equal(t, tt.expectedSize, store.teamSizes["s1"])

			got := make(map[string]string)
			for id, m := range store.members {
				if m.StartupID == "s1" {
					got[id] = m.Name + " <" + m.Email + ">"
				}
			}
			assert.Equal(t, tt.expectedMembers, got)
		})
	}
}

func TestScenarioA_InviteGrowsTeam(t *testing.T) {
	store := newFakeStore(&model.Cofounder{ID: "m0", StartupID: "s1", Name: "Founder", Email: "founder@x.com"})
	store.teamSizes["s1"] = 1
	entries := []Entry{newEntry("A", "a@x.com")}

	report, err := NewValidator(store).Validate(context.Background(), entries)
	require.NoError(t, err)
	require.True(t, report.OK())

	size, err := NewReconciler(store).Apply(context.Background(), "s1", entries)
	require.NoError(t, err)
	assert.Equal(t, 2, size)
	assert.Equal(t, 2, store.teamSizes["s1"])
}

func TestReconciler_TeamSizeMatchesMembers(t *testing.T) {
	batches := [][]Entry{
		{newEntry("A", "a@x.com"), newEntry("B", "b@x.com")},
		{existing("m1", "Mia", "mia@x.com", true), existing("m2", "Bo", "bo@x.com", false)},
		{existing("m1", "Mia", "mia@x.com", false)},
		{existing("m1", "Mia", "mia@x.com", true), existing("m2", "Bo", "bo@x.com", true), newEntry("C", "c@x.com")},
	}

	for _, batch := range batches {
		store := newFakeStore(founders()...)
		before, _ := store.CountMembers(context.Background(), "s1")

		created, deleted := 0, 0
		for _, e := range batch {
			switch e := e.(type) {
			case NewEntry:
				created++
			case ExistingEntry:
				if e.Delete {
					deleted++
				}
			}
		}

		size, err := NewReconciler(store).Apply(context.Background(), "s1", batch)
		require.NoError(t, err)

		after, _ := store.CountMembers(context.Background(), "s1")
		assert.Equal(t, after, size)
		assert.Equal(t, before+created-deleted, store.teamSizes["s1"])
	}
}

// Validation and apply are not serialized: two submissions inviting the same email
// can both pass validation before either applies. The database unique index on
// cofounder email is what rejects the second apply.
func TestKnownRace_ConcurrentInvitesBothValidate(t *testing.T) {
	store := newFakeStore(founders()...)
	batch := []Entry{newEntry("Dup", "dup@x.com")}

	first, err := NewValidator(store).Validate(context.Background(), batch)
	require.NoError(t, err)
	second, err := NewValidator(store).Validate(context.Background(), batch)
	require.NoError(t, err)
	assert.True(t, first.OK())
	assert.True(t, second.OK())

	_, err = NewReconciler(store).Apply(context.Background(), "s1", batch)
	require.NoError(t, err)
	_, err = NewReconciler(store).Apply(context.Background(), "s2", batch)
	require.NoError(t, err)

	count := 0
	for _, m := range store.members {
		if m.Email == "dup@x.com" {
			count++
		}
	}
	assert.Equal(t, 2, count, "fake store has no unique constraint")
}
