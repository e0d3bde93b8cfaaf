package services

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Dosada05/tourney/brackets"
	"github.com/Dosada05/tourney/models"
)

var formatTitles = map[brackets.Format]string{
	brackets.FormatSingleElimination: "Single elimination",
	brackets.FormatRoundRobin:        "Round robin",
	brackets.FormatGroups:            "Group stage",
	brackets.FormatCourts:            "Court allocation",
}

// RenderTournament lays a tournament out as plain text: a title block, the
// draw, then the rules.
func RenderTournament(t *models.Tournament) string {
	var b strings.Builder

	b.WriteString(t.Name + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(t.Name))) + "\n")
	if title, ok := formatTitles[t.Format]; ok {
		fmt.Fprintf(&b, "Format: %s\n", title)
	}
	if t.Date != nil {
		fmt.Fprintf(&b, "Date: %s\n", t.Date.Format("Monday 2 January 2006"))
	}
	fmt.Fprintf(&b, "Participants: %d\n", len(t.Participants))

	switch {
	case t.Bracket != nil:
		b.WriteString("\nFirst round\n")
		writeMatches(&b, t.Bracket, "  ")
	case t.Schedule != nil:
		writeSchedule(&b, t.Schedule, "")
	case t.Groups != nil:
		for i, members := range t.Groups.Groups {
			fmt.Fprintf(&b, "\nGroup %s: %s\n", groupLabel(i), strings.Join(members, ", "))
			if i < len(t.Groups.Schedules) {
				writeSchedule(&b, t.Groups.Schedules[i], "  ")
			}
		}
	case t.Courts != nil:
		for _, court := range t.Courts.Courts {
			fmt.Fprintf(&b, "\n%s\n", court.Name)
			for _, team := range court.Teams {
				fmt.Fprintf(&b, "  - %s\n", team)
			}
		}
		if len(t.Courts.Unassigned) > 0 {
			b.WriteString("\nUnassigned\n")
			for _, team := range t.Courts.Unassigned {
				fmt.Fprintf(&b, "  - %s\n", team)
			}
		}
	}

	if rules := strings.TrimSpace(t.Rules); rules != "" {
		b.WriteString("\nTournament Rules\n----------------\n")
		b.WriteString(rules + "\n")
	}
	return b.String()
}

func writeSchedule(b *strings.Builder, s brackets.Schedule, indent string) {
	for r, round := range s {
		fmt.Fprintf(b, "\n%sRound %d\n", indent, r+1)
		writeMatches(b, round, indent+"  ")
	}
}

func writeMatches(b *strings.Builder, matches []brackets.Match, indent string) {
	tw := tabwriter.NewWriter(b, 0, 0, 1, ' ', 0)
	for _, m := range matches {
		fmt.Fprintf(tw, "%s%s\tvs\t%s\n", indent, m[0], m[1])
	}
	tw.Flush()
}

// groupLabel returns A, B, ... Z, AA, AB, ...
func groupLabel(i int) string {
	label := ""
	for i >= 0 {
		label = string(rune('A'+i%26)) + label
		i = i/26 - 1
	}
	return label
}
