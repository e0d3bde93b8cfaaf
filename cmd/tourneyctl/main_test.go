package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunUsage(t *testing.T) {
	code, _, stderr := runCLI()
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Usage:")

	code, _, stderr = runCLI("swiss")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Unknown command: swiss")

	code, stdout, _ := runCLI("help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Commands:")
}

func TestRoundRobinCommand(t *testing.T) {
	code, stdout, stderr := runCLI("roundrobin", "-title", "Club Night", "-seed", "3", "A", "B", "C", "D")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "Club Night\n==========\n")
	assert.Contains(t, stdout, "Format: Round robin\n")
	assert.Contains(t, stdout, "Participants: 4\n")
	assert.Contains(t, stdout, "Round 1\n  A vs D\n")
	assert.Contains(t, stdout, "Round 3\n")
	assert.Contains(t, stdout, "Seed: 3\n")
}

func TestDrawCommandsAreReproducible(t *testing.T) {
	for _, cmd := range []string{"bracket", "groups"} {
		t.Run(cmd, func(t *testing.T) {
			args := []string{cmd, "-seed", "42", "-names", `Alice, Bob, "Carol, Jr", Dave, Erin, Frank`}
			code, first, stderr := runCLI(args...)
			require.Equal(t, 0, code, stderr)
			_, second, _ := runCLI(args...)
			assert.Equal(t, first, second)
			assert.Contains(t, first, "Carol, Jr")
		})
	}
}

func TestCourtsCommand(t *testing.T) {
	code, stdout, stderr := runCLI("courts", "-teams", "8", "-courts", "2", "-rules", "Rally scoring.")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Court 1\n")
	assert.Contains(t, stdout, "Court 2\n")
	assert.Contains(t, stdout, "Tournament Rules\n----------------\nRally scoring.\n")
}

func TestDrawCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"odd courts", []string{"courts", "-teams", "5"}, 1},
		{"single participant", []string{"bracket", "Alice"}, 1},
		{"no participants", []string{"roundrobin"}, 1},
		{"shuffle only on roundrobin", []string{"bracket", "-shuffle", "A", "B"}, 1},
		{"bad date", []string{"bracket", "-date", "99/99/9999", "A", "B"}, 1},
		{"help flag", []string{"groups", "-h"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCLI(tt.args...)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestImportCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<table><tr><th>#</th><th>Name</th></tr>
<tr><td>1</td><td>Alice</td></tr><tr><td>2</td><td>Bob</td></tr></table>`)
	}))
	defer srv.Close()

	code, stdout, stderr := runCLI("import", srv.URL)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "Alice\nBob\n", stdout)

	code, _, stderr = runCLI("import")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "at least one URL")
}
