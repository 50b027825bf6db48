package model

import "time"

// Cofounder is a persisted member of a startup team.
type Cofounder struct {
	ID        string    `json:"id"`
	StartupID string    `json:"startup_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CofounderEntry is one row of a submitted roster. ID is empty for new invitees;
// Delete is only honored when ID is set.
type CofounderEntry struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Delete bool   `json:"delete,omitempty"`
}

type Roster struct {
	StartupID  string            `json:"startup_id"`
	TeamSize   int               `json:"team_size"`
	Cofounders []*CofounderEntry `json:"cofounders"`
}
