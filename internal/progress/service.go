package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrUnknownPlayer marks a lookup for a player that has never logged in.
	ErrUnknownPlayer = errors.New("unknown player")
	// ErrUnreachable marks a backing-store failure. The service never retries;
	// that is the caller's concern.
	ErrUnreachable = errors.New("progress store unreachable")
)

// Repository is the durable keyed store for player progress.
type Repository interface {
	// Get returns ErrUnknownPlayer when no record exists.
	Get(ctx context.Context, playerID string) (PlayerProgress, error)
	// Create inserts a fresh record with default level 1 and score 0.
	Create(ctx context.Context, playerID string) (PlayerProgress, error)
	Save(ctx context.Context, p PlayerProgress) error
}

// Service applies last-write-wins progress updates. The client is the source
// of truth for level and score.
type Service struct {
	repo   Repository
	logger zerolog.Logger
	now    func() time.Time
}

// NewService wires the sync service.
func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Login returns the player's record, creating one on first contact.
func (s *Service) Login(ctx context.Context, playerID string) (PlayerProgress, error) {
	p, err := s.repo.Get(ctx, playerID)
	if errors.Is(err, ErrUnknownPlayer) {
		s.logger.Info().Str("player", playerID).Msg("first login, creating progress record")
		p, err = s.repo.Create(ctx, playerID)
	}
	if err != nil {
		return PlayerProgress{}, storeErr("login", err)
	}
	return p, nil
}

// Get returns the stored record without modifying it.
func (s *Service) Get(ctx context.Context, playerID string) (PlayerProgress, error) {
	p, err := s.repo.Get(ctx, playerID)
	if errors.Is(err, ErrUnknownPlayer) {
		return PlayerProgress{}, err
	}
	if err != nil {
		return PlayerProgress{}, storeErr("get progress", err)
	}
	return p, nil
}

// Sync applies one progress update and persists the result. A sync for a
// never-seen player creates the record first, then applies the update, so a
// fresh device can sync without a prior login.
func (s *Service) Sync(ctx context.Context, req SyncRequest) (PlayerProgress, error) {
	p, err := s.repo.Get(ctx, req.PlayerID)
	if errors.Is(err, ErrUnknownPlayer) {
		p, err = s.repo.Create(ctx, req.PlayerID)
	}
	if err != nil {
		return PlayerProgress{}, storeErr("sync", err)
	}

	if req.Level != nil {
		p.Level = *req.Level
	}
	if req.Score != nil {
		p.TotalScore = *req.Score
	}
	if req.SolvedQuestionID != nil && !containsID(p.Served, *req.SolvedQuestionID) {
		p.Served = append(p.Served, *req.SolvedQuestionID)
	}
	p.LastLogin = s.now()

	if err := s.repo.Save(ctx, p); err != nil {
		return PlayerProgress{}, storeErr("sync", err)
	}
	return p, nil
}

func containsID(ids []int, id int) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrUnreachable, err))
}
