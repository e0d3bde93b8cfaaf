package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/tourney/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	Save(ctx context.Context, tournament *models.Tournament) error
	Get(ctx context.Context, name string) (*models.Tournament, error)
	Delete(ctx context.Context, name string) error
	ListNames(ctx context.Context) ([]string, error)
}

type rowTournamentRepository struct {
	rows RowStore
}

// NewTournamentRepository stores each tournament as a JSON row keyed by its
// name.
func NewTournamentRepository(rows RowStore) TournamentRepository {
	return &rowTournamentRepository{rows: rows}
}

func (r *rowTournamentRepository) Save(ctx context.Context, t *models.Tournament) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode tournament %q: %w", t.Name, err)
	}
	if err := r.rows.Put(ctx, t.Name, payload); err != nil {
		return fmt.Errorf("failed to save tournament %q: %w", t.Name, err)
	}
	return nil
}

func (r *rowTournamentRepository) Get(ctx context.Context, name string) (*models.Tournament, error) {
	payload, err := r.rows.Get(ctx, name)
	if err != nil {
		return nil, r.handleRowError(name, err)
	}

	var t models.Tournament
	if err := json.Unmarshal(payload, &t); err != nil {
		return nil, fmt.Errorf("failed to decode tournament %q: %w", name, err)
	}
	return &t, nil
}

func (r *rowTournamentRepository) Delete(ctx context.Context, name string) error {
	if err := r.rows.Delete(ctx, name); err != nil {
		return r.handleRowError(name, err)
	}
	return nil
}

func (r *rowTournamentRepository) ListNames(ctx context.Context) ([]string, error) {
	names, err := r.rows.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return names, nil
}

func (r *rowTournamentRepository) handleRowError(name string, err error) error {
	if errors.Is(err, ErrRowNotFound) {
		return ErrTournamentNotFound
	}
	return fmt.Errorf("tournament %q: %w", name, err)
}
