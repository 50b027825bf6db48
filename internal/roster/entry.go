package roster

import "github.com/yakoovad/startup-roster/internal/model"

// Contact is the editable part of a roster line.
type Contact struct {
	Name  string
	Email string
}

// Entry is one line of a proposed roster batch: either a NewEntry or an ExistingEntry.
type Entry interface {
	contact() Contact
}

// NewEntry invites a cofounder who is not persisted yet.
type NewEntry struct {
	Contact
}

// ExistingEntry refers to a persisted cofounder. Only the name may change;
// Delete removes the cofounder from the team.
type ExistingEntry struct {
	ID string
	Contact
	Delete bool
}

func (e NewEntry) contact() Contact { return e.Contact }

func (e ExistingEntry) contact() Contact { return e.Contact }

// FromModel converts submitted rows into roster entries. Rows without an id are new
// invitees and their delete flag is dropped.
func FromModel(rows []*model.CofounderEntry) []Entry {
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		c := Contact{Name: row.Name, Email: row.Email}
		if row.ID == "" {
			entries = append(entries, NewEntry{Contact: c})
			continue
		}
		entries = append(entries, ExistingEntry{ID: row.ID, Contact: c, Delete: row.Delete})
	}
	return entries
}

// ToModel is the inverse of FromModel.
func ToModel(entries []Entry) []*model.CofounderEntry {
	rows := make([]*model.CofounderEntry, 0, len(entries))
	for _, entry := range entries {
		c := entry.contact()
		row := &model.CofounderEntry{Name: c.Name, Email: c.Email}
		if e, ok := entry.(ExistingEntry); ok {
			row.ID = e.ID
			row.Delete = e.Delete
		}
		rows = append(rows, row)
	}
	return rows
}
