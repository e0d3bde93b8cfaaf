package brackets

import (
	"math/rand"
	"strings"
	"time"
)

const (
	// Bye marks a slot with no opponent; its occupant advances or sits out.
	Bye = "BYE"
	// TBD marks a slot whose occupant is decided by an earlier match.
	// The generator never emits it.
	TBD = "TBD"
)

// Match is an ordered pair of slots. It marshals as a two-element JSON array.
type Match [2]string

// Round is a set of matches contested at the same time.
type Round []Match

// Schedule is an ordered list of rounds, round 0 first.
type Schedule []Round

// GroupStage holds the pools in dealing order and one schedule per pool.
type GroupStage struct {
	Groups    [][]string `json:"groups"`
	Schedules []Schedule `json:"schedules"`
}

func (m Match) HasBye() bool {
	return m[0] == Bye || m[1] == Bye
}

// Contains reports whether name occupies either slot.
func (m Match) Contains(name string) bool {
	return m[0] == name || m[1] == name
}

// Opponent returns the other slot for name. ok is false when name is not
// in the match.
func (m Match) Opponent(name string) (opponent string, ok bool) {
	switch name {
	case m[0]:
		return m[1], true
	case m[1]:
		return m[0], true
	}
	return "", false
}

// Pending reports whether either slot is still TBD.
func (m Match) Pending() bool {
	return m[0] == TBD || m[1] == TBD
}

// GroupPolicy returns how many pools to split count participants into.
type GroupPolicy func(count int) int

// DefaultGroupPolicy uses 4 groups from 16 participants, 2 from 8,
// otherwise one group per three participants (at least one).
func DefaultGroupPolicy(count int) int {
	switch {
	case count >= 16:
		return 4
	case count >= 8:
		return 2
	}
	return max(1, count/3)
}

// Generator builds brackets. It is not safe for concurrent use because it
// owns a *rand.Rand.
type Generator struct {
	rng               *rand.Rand
	shuffleRoundRobin bool
	groupPolicy       GroupPolicy
}

type Option func(*Generator)

// WithSeed makes every shuffle reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand supplies the randomness source. A nil source is ignored.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithRoundRobinShuffle shuffles round-robin input once before rotation,
// which changes which pair meets in which numbered round.
func WithRoundRobinShuffle(enabled bool) Option {
	return func(g *Generator) {
		g.shuffleRoundRobin = enabled
	}
}

// WithGroupPolicy overrides DefaultGroupPolicy. A nil policy is ignored.
func WithGroupPolicy(policy GroupPolicy) Option {
	return func(g *Generator) {
		if policy != nil {
			g.groupPolicy = policy
		}
	}
}

func New(opts ...Option) *Generator {
	g := &Generator{groupPolicy: DefaultGroupPolicy}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

// CleanParticipants trims every name and drops the blank ones. Order and
// duplicates are kept. The input slice is not modified.
func CleanParticipants(names []string) []string {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

func (g *Generator) shuffle(names []string) {
	g.rng.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})
}
