package models

import (
	"time"

	"github.com/Dosada05/tourney/brackets"
)

const DefaultTournamentName = "Untitled Tournament"

// Tournament is one generated draw, stored as a single row keyed by Name.
// Regenerating a tournament replaces the whole row.
type Tournament struct {
	Name         string          `json:"name"`
	Format       brackets.Format `json:"format"`
	Participants []string        `json:"participants"`
	Seed         int64           `json:"seed"`
	Shuffled     bool            `json:"round_robin_shuffled,omitempty"`
	Rules        string          `json:"rules,omitempty"`
	Date         *time.Time      `json:"date,omitempty"`

	Bracket  []brackets.Match          `json:"bracket,omitempty"`
	Schedule brackets.Schedule         `json:"schedule,omitempty"`
	Groups   *brackets.GroupStage      `json:"groups,omitempty"`
	Courts   *brackets.CourtAllocation `json:"courts,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApplyResult copies the generated structure onto the tournament, clearing
// whatever a previous generation left behind.
func (t *Tournament) ApplyResult(res *brackets.Result) {
	t.Format = res.Format
	t.Bracket = res.Bracket
	t.Schedule = res.Schedule
	t.Groups = res.Groups
	t.Courts = res.Courts
}
