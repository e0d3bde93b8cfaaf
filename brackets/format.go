package brackets

import (
	"fmt"
	"strings"
)

type Format string

const (
	FormatSingleElimination Format = "single_elimination"
	FormatRoundRobin        Format = "round_robin"
	FormatGroups            Format = "groups"
	FormatCourts            Format = "courts"
)

var formatAliases = map[string]Format{
	"single_elimination": FormatSingleElimination,
	"singleelimination":  FormatSingleElimination,
	"elimination":        FormatSingleElimination,
	"knockout":           FormatSingleElimination,
	"round_robin":        FormatRoundRobin,
	"roundrobin":         FormatRoundRobin,
	"groups":             FormatGroups,
	"group_stage":        FormatGroups,
	"courts":             FormatCourts,
}

// ParseFormat accepts the canonical names as well as the CamelCase bracket
// types ("SingleElimination", "RoundRobin").
func ParseFormat(s string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.ReplaceAll(key, " ", "_")
	if f, ok := formatAliases[key]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
}

// Result carries the output of Generate; only the field matching Format
// is set.
type Result struct {
	Format   Format           `json:"format"`
	Bracket  []Match          `json:"bracket,omitempty"`
	Schedule Schedule         `json:"schedule,omitempty"`
	Groups   *GroupStage      `json:"groups,omitempty"`
	Courts   *CourtAllocation `json:"courts,omitempty"`
}

// Generate dispatches to the builder for format. courts is only read by
// FormatCourts.
func (g *Generator) Generate(format Format, names []string, courts int) (*Result, error) {
	res := &Result{Format: format}
	var err error

	switch format {
	case FormatSingleElimination:
		res.Bracket, err = g.BuildBracket(names)
	case FormatRoundRobin:
		res.Schedule, err = g.BuildRoundRobin(names)
	case FormatGroups:
		res.Groups, err = g.BuildGroups(names)
	case FormatCourts:
		res.Courts, err = g.AllocateCourts(names, courts)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}
