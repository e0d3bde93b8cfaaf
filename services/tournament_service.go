package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/Dosada05/tourney/brackets"
	"github.com/Dosada05/tourney/models"
	"github.com/Dosada05/tourney/realtime"
	"github.com/Dosada05/tourney/repositories"
	"github.com/Dosada05/tourney/storage"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Broadcaster pushes a message to everyone watching a tournament.
type Broadcaster interface {
	BroadcastToRoom(room string, msg realtime.Message) int
}

type GenerateInput struct {
	Name             string   `json:"name"`
	Format           string   `json:"format"`
	Participants     []string `json:"participants,omitempty"`
	ParticipantsText string   `json:"participants_text,omitempty"`
	// TeamCount generates "Team 1".."Team N" when no names are given.
	TeamCount         int    `json:"team_count,omitempty"`
	Courts            int    `json:"courts,omitempty"`
	Rules             string `json:"rules,omitempty"`
	Date              string `json:"date,omitempty"`
	Seed              *int64 `json:"seed,omitempty"`
	ShuffleRoundRobin *bool  `json:"shuffle_round_robin,omitempty"`
}

// maxParticipants bounds a single draw; a round robin grows with the square
// of the field.
const maxParticipants = 1000

func (in GenerateInput) participants() ([]string, error) {
	names := append([]string{}, in.Participants...)
	if in.ParticipantsText != "" {
		parsed, err := parseParticipantList(in.ParticipantsText)
		if err != nil {
			return nil, err
		}
		names = append(names, parsed...)
	}

	usable := len(brackets.CleanParticipants(names))
	if usable == 0 && in.TeamCount > 0 {
		if in.TeamCount > maxParticipants {
			return nil, fmt.Errorf("%w: team_count %d exceeds the limit of %d", ErrValidationFailed, in.TeamCount, maxParticipants)
		}
		names = teamNames(in.TeamCount)
		usable = in.TeamCount
	}
	if usable > maxParticipants {
		return nil, fmt.Errorf("%w: %d participants exceed the limit of %d", ErrValidationFailed, usable, maxParticipants)
	}
	return names, nil
}

type TournamentServiceOption func(*TournamentService)

// WithDefaultRoundRobinShuffle sets the shuffle used when a request does not
// say.
func WithDefaultRoundRobinShuffle(shuffle bool) TournamentServiceOption {
	return func(s *TournamentService) { s.defaultShuffle = shuffle }
}

// WithUploader enables Publish.
func WithUploader(u storage.FileUploader) TournamentServiceOption {
	return func(s *TournamentService) { s.uploader = u }
}

func WithBroadcaster(b Broadcaster) TournamentServiceOption {
	return func(s *TournamentService) { s.hub = b }
}

type TournamentService struct {
	repo           repositories.TournamentRepository
	hub            Broadcaster
	uploader       storage.FileUploader
	defaultShuffle bool
	now            func() time.Time
	logger         *slog.Logger
}

func NewTournamentService(repo repositories.TournamentRepository, logger *slog.Logger, opts ...TournamentServiceOption) *TournamentService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &TournamentService{
		repo:   repo,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preview generates a tournament without saving it.
func (s *TournamentService) Preview(ctx context.Context, in GenerateInput) (*models.Tournament, error) {
	return s.build(in)
}

// Generate builds a tournament and stores it under its name, replacing any
// earlier draw with the same name. CreatedAt is carried over from the
// stored row, but the read and the save are separate store calls, so two
// concurrent regenerations of one name may both stamp a fresh CreatedAt.
func (s *TournamentService) Generate(ctx context.Context, in GenerateInput) (*models.Tournament, error) {
	t, err := s.build(in)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, t.Name)
	switch {
	case err == nil:
		t.CreatedAt = existing.CreatedAt
	case !errors.Is(err, repositories.ErrTournamentNotFound):
		return nil, fmt.Errorf("failed to load tournament %q: %w", t.Name, err)
	}

	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("tournament generated",
		slog.String("name", t.Name),
		slog.String("format", string(t.Format)),
		slog.Int("participants", len(t.Participants)),
		slog.Int64("seed", t.Seed),
	)

	if s.hub != nil {
		s.hub.BroadcastToRoom(t.Name, realtime.Message{Type: realtime.MessageBracketUpdated, Payload: t})
	}
	return t, nil
}

func (s *TournamentService) build(in GenerateInput) (*models.Tournament, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = models.DefaultTournamentName
	}

	format, err := brackets.ParseFormat(in.Format)
	if err != nil {
		return nil, err
	}

	names, err := in.participants()
	if err != nil {
		return nil, err
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	now := s.now()
	seed := now.UnixNano()
	if in.Seed != nil {
		seed = *in.Seed
	}
	shuffle := s.defaultShuffle
	if in.ShuffleRoundRobin != nil {
		shuffle = *in.ShuffleRoundRobin
	}

	gen := brackets.New(brackets.WithSeed(seed), brackets.WithRoundRobinShuffle(shuffle))
	res, err := gen.Generate(format, names, in.Courts)
	if err != nil {
		return nil, err
	}

	t := &models.Tournament{
		Name:         name,
		Participants: brackets.CleanParticipants(names),
		Seed:         seed,
		Shuffled:     shuffle && format == brackets.FormatRoundRobin,
		Rules:        strings.TrimSpace(in.Rules),
		Date:         date,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	t.ApplyResult(res)
	return t, nil
}

func (s *TournamentService) Get(ctx context.Context, name string) (*models.Tournament, error) {
	return s.repo.Get(ctx, name)
}

func (s *TournamentService) Delete(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return err
	}
	s.logger.Info("tournament deleted", slog.String("name", name))
	if s.hub != nil {
		s.hub.BroadcastToRoom(name, realtime.Message{Type: realtime.MessageTournamentDeleted, Payload: map[string]string{"name": name}})
	}
	return nil
}

// Search ranks stored tournament names against query, closest first. An
// empty query lists every name in order.
func (s *TournamentService) Search(ctx context.Context, query string) ([]string, error) {
	names, err := s.repo.ListNames(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		sort.Strings(names)
		return names, nil
	}

	ranks := fuzzy.RankFindFold(query, names)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].Target < ranks[j].Target
	})

	matches := make([]string, 0, len(ranks))
	for _, r := range ranks {
		matches = append(matches, r.Target)
	}
	return matches, nil
}

// Publish uploads the plain-text rendering of a stored tournament.
func (s *TournamentService) Publish(ctx context.Context, name string) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrPublishingDisabled
	}

	t, err := s.repo.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	key := PublishedKey(t.Name)
	res, err := s.uploader.Upload(ctx, key, "text/plain; charset=utf-8", strings.NewReader(RenderTournament(t)))
	if err != nil {
		return nil, fmt.Errorf("failed to publish tournament %q: %w", name, err)
	}
	s.logger.Info("tournament published", slog.String("name", name), slog.String("location", res.Location))
	return res, nil
}

// PublishedKey is the object key a tournament's rendering is uploaded to.
func PublishedKey(name string) string {
	return "schedules/" + url.PathEscape(name) + ".txt"
}
