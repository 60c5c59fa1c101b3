package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gameontext/gameon-player/internal/dependencies/clock"
	"github.com/gameontext/gameon-player/internal/dependencies/random"
	"github.com/gameontext/gameon-player/internal/model"
	"github.com/gameontext/gameon-player/internal/services/auth"
	"github.com/gameontext/gameon-player/internal/storage"
)

// EventSink receives change events after a mutation commits.
// Enqueue must not block.
type EventSink interface {
	Enqueue(event model.Event)
}

// Credentials is the secret part of a player record
type Credentials struct {
	SharedSecret *string
	Email        *string
}

// Service implements the player account operations
type Service struct {
	storage storage.Storage
	policy  auth.Policy
	events  EventSink
	random  random.Random
	clock   clock.Clock
	logger  *slog.Logger

	locationLocks stripedLock
}

// New creates a new account service
func New(
	storage storage.Storage,
	policy auth.Policy,
	events EventSink,
	random random.Random,
	clock clock.Clock,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage: storage,
		policy:  policy,
		events:  events,
		random:  random,
		clock:   clock,
		logger:  logger.With(slog.String("component", "account")),
	}
}

// CanViewCredentials reports whether the caller may see the credentials of target
func (s *Service) CanViewCredentials(ac auth.AuthContext, target model.PlayerID) bool {
	return s.policy.Authorized(ac, target)
}

// Get returns a player record. Anonymous reads are allowed; the caller
// redacts credentials using CanViewCredentials.
//
// A record without an email picks up the email claim when the owner reads it
// with a client token.
func (s *Service) Get(ctx context.Context, ac auth.AuthContext, id model.PlayerID) (*model.Player, error) {
	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	if player.Email == nil && !ac.IsServer() && ac.Email() != "" {
		if caller, ok := ac.Identity(); ok && caller == id {
			s.captureEmail(ctx, player, ac.Email())
		}
	}

	return player, nil
}

// captureEmail stores email on player. Failure leaves player unchanged and is
// only logged: the read itself has succeeded.
func (s *Service) captureEmail(ctx context.Context, player *model.Player, email string) {
	updated := player.Clone()
	updated.Email = model.StringPtr(email)

	if err := s.storage.UpdatePlayer(ctx, updated); err != nil {
		s.logger.Warn("failed to capture email",
			slog.String("player_id", string(player.ID)),
			slog.String("error", err.Error()),
		)
		return
	}

	*player = *updated
	s.emit(model.EventUpdateEmail, player, nil)
}

// List returns every player record ordered by id
func (s *Service) List(ctx context.Context) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx)
}

// Create stores a new player. Only the player themselves or the system
// identity may create it. A shared secret is generated for the new record.
func (s *Service) Create(ctx context.Context, ac auth.AuthContext, input model.Player) (*model.Player, error) {
	if input.ID == "" {
		return nil, fmt.Errorf("%w: id is required", model.ErrInvalidPlayer)
	}
	if err := s.requireAuthorized(ac, input.ID); err != nil {
		return nil, err
	}

	secret, err := GenerateSecret(s.random)
	if err != nil {
		return nil, err
	}

	player := &model.Player{
		ID:            input.ID,
		Name:          input.Name,
		FavoriteColor: input.FavoriteColor,
		Email:         input.Email,
		SharedSecret:  &secret,
	}
	if err := s.storage.CreatePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player created", slog.String("player_id", string(player.ID)))
	s.emit(model.EventCreate, player, nil)
	return player, nil
}

// Update applies patch to the stored record according to the caller's audience
func (s *Service) Update(ctx context.Context, ac auth.AuthContext, id model.PlayerID, patch model.PlayerPatch) (*model.Player, error) {
	if err := s.requireAuthorized(ac, id); err != nil {
		return nil, err
	}
	if patch.ID != nil && *patch.ID != id {
		return nil, fmt.Errorf("%w: id %q does not match path", model.ErrInvalidPlayer, *patch.ID)
	}

	existing, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Revision != nil && *patch.Revision != existing.Revision {
		return nil, model.ErrRevisionConflict
	}

	merged := MergeUpdate(*existing, patch, ac.Audience())
	if err := s.storage.UpdatePlayer(ctx, &merged); err != nil {
		return nil, err
	}

	s.emit(model.EventUpdate, &merged, nil)
	return &merged, nil
}

// Delete removes a player. Only the player themselves or the system identity may delete it.
func (s *Service) Delete(ctx context.Context, ac auth.AuthContext, id model.PlayerID) error {
	if err := s.requireAuthorized(ac, id); err != nil {
		return err
	}

	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.DeletePlayer(ctx, id); err != nil {
		return err
	}

	s.logger.Info("player deleted", slog.String("player_id", string(id)))
	s.emit(model.EventDelete, player, nil)
	return nil
}

// GetLocation returns the player's location, or FirstLocation when none is stored
func (s *Service) GetLocation(ctx context.Context, id model.PlayerID) (string, error) {
	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return "", err
	}
	return player.CurrentLocation(), nil
}

// UpdateLocation moves a player from change.OldLocation to change.NewLocation.
// It is restricted to server tokens. When the stored location is not
// OldLocation nothing is written and a *model.LocationConflictError carrying
// the current location is returned. A concurrent write to the record between
// read and write yields model.ErrLocationPersistence; it is not retried.
func (s *Service) UpdateLocation(ctx context.Context, ac auth.AuthContext, id model.PlayerID, change model.LocationChange) (string, error) {
	if !ac.IsAuthenticated() {
		return "", model.ErrUnauthenticated
	}
	if !ac.IsServer() {
		return "", model.ErrWrongAudience
	}
	if change.NewLocation == "" {
		return "", fmt.Errorf("%w: newLocation is required", model.ErrInvalidPlayer)
	}

	unlock := s.locationLocks.lock(id)
	defer unlock()

	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return "", err
	}

	current := player.CurrentLocation()
	if current != change.OldLocation {
		return "", &model.LocationConflictError{Current: current}
	}

	player.Location = model.StringPtr(change.NewLocation)
	if err := s.storage.UpdatePlayer(ctx, player); err != nil {
		if errors.Is(err, model.ErrRevisionConflict) {
			s.logger.Error("location update lost a concurrent write",
				slog.String("player_id", string(id)),
				slog.String("old_location", change.OldLocation),
				slog.String("new_location", change.NewLocation),
			)
			return "", fmt.Errorf("%w: player %s", model.ErrLocationPersistence, id)
		}
		return "", err
	}

	s.emit(model.EventUpdateLocation, player, change.Origin)
	return change.NewLocation, nil
}

// GetCredentials returns the shared secret and email of a player
func (s *Service) GetCredentials(ctx context.Context, ac auth.AuthContext, id model.PlayerID) (*Credentials, error) {
	if err := s.requireAuthorized(ac, id); err != nil {
		return nil, err
	}

	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Credentials{SharedSecret: player.SharedSecret, Email: player.Email}, nil
}

// RotateSecret replaces the shared secret with a fresh one. It must be
// requested by a client token; a revoked secret is never replaced.
func (s *Service) RotateSecret(ctx context.Context, ac auth.AuthContext, id model.PlayerID) (*model.Player, error) {
	player, err := s.loadForCredentialChange(ctx, ac, id)
	if err != nil {
		return nil, err
	}

	secret, err := GenerateSecret(s.random)
	if err != nil {
		return nil, err
	}
	player.SharedSecret = &secret
	if err := s.storage.UpdatePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("shared secret rotated", slog.String("player_id", string(id)))
	s.emit(model.EventUpdateAPIKey, player, nil)
	return player, nil
}

// UpdateEmail stores the email claim of the caller's token on the record
func (s *Service) UpdateEmail(ctx context.Context, ac auth.AuthContext, id model.PlayerID) (*model.Player, error) {
	player, err := s.loadForCredentialChange(ctx, ac, id)
	if err != nil {
		return nil, err
	}

	email := ac.Email()
	if email == "" {
		return player, nil
	}
	player.Email = model.StringPtr(email)
	if err := s.storage.UpdatePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.emit(model.EventUpdateEmail, player, nil)
	return player, nil
}

// Locations maps player ids to locations. A non-empty playerID restricts the
// result to that player, which must exist. A non-empty siteID keeps only
// players at that site.
func (s *Service) Locations(ctx context.Context, playerID model.PlayerID, siteID string) (map[model.PlayerID]string, error) {
	var players []*model.Player
	if playerID != "" {
		p, err := s.storage.GetPlayer(ctx, playerID)
		if err != nil {
			return nil, err
		}
		players = []*model.Player{p}
	} else {
		all, err := s.storage.ListPlayers(ctx)
		if err != nil {
			return nil, err
		}
		players = all
	}

	locations := make(map[model.PlayerID]string, len(players))
	for _, p := range players {
		loc := p.CurrentLocation()
		if siteID == "" || siteID == loc {
			locations[p.ID] = loc
		}
	}
	return locations, nil
}

// loadForCredentialChange applies the gates shared by the credential
// endpoints and returns the stored record
func (s *Service) loadForCredentialChange(ctx context.Context, ac auth.AuthContext, id model.PlayerID) (*model.Player, error) {
	if !ac.IsAuthenticated() {
		return nil, model.ErrUnauthenticated
	}
	if ac.IsServer() {
		return nil, model.ErrWrongAudience
	}
	if err := s.requireAuthorized(ac, id); err != nil {
		return nil, err
	}

	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	if player.IsSecretRevoked() {
		return nil, model.ErrSecretRevoked
	}
	return player, nil
}

func (s *Service) requireAuthorized(ac auth.AuthContext, id model.PlayerID) error {
	if !ac.IsAuthenticated() {
		return model.ErrUnauthenticated
	}
	caller, _ := ac.Identity()
	if !s.policy.Authorized(ac, id) {
		return fmt.Errorf("%w: %s may not act on player %s", model.ErrForbidden, caller, id)
	}
	if caller != id && s.policy.IsSystem(ac) {
		s.logger.Info("system identity acting on player",
			slog.String("caller", string(caller)),
			slog.String("player_id", string(id)))
	}
	return nil
}

func (s *Service) emit(eventType model.EventType, player *model.Player, origin *string) {
	s.events.Enqueue(model.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		PlayerID:  player.ID,
		Player:    *player.Clone(),
		Origin:    origin,
		Timestamp: s.clock.Now(),
	})
}
