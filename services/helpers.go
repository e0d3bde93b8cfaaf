package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-andiamo/splitter"
)

var commaSplitter = splitter.MustCreateSplitter(',', splitter.DoubleQuotes)

// parseParticipantList accepts one name per line, or a single comma
// separated line. Double quotes keep commas inside a name.
func parseParticipantList(text string) ([]string, error) {
	lines := make([]string, 0)
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	switch len(lines) {
	case 0:
		return nil, nil
	case 1:
		parts, err := commaSplitter.Split(lines[0])
		if err != nil {
			return nil, fmt.Errorf("%w: participant list: %v", ErrValidationFailed, err)
		}
		names := make([]string, 0, len(parts))
		for _, p := range parts {
			names = append(names, unquote(p))
		}
		return names, nil
	}

	names := make([]string, 0, len(lines))
	for _, line := range lines {
		names = append(names, unquote(line))
	}
	return names, nil
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// teamNames returns "Team 1".."Team n".
func teamNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Team %d", i+1)
	}
	return names
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q: %v", ErrValidationFailed, s, err)
	}
	return &t, nil
}
