package source

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/rota/internal/kvutil"
	"github.com/arloliu/rota/internal/logging"
	"github.com/arloliu/rota/types"
)

// DefaultRosterPrefix is the first key token of every roster entry.
const DefaultRosterPrefix = "roster"

var (
	// ErrInvalidKey is returned when an activity, window or participant ID cannot
	// be turned into a KV key.
	ErrInvalidKey = errors.New("invalid roster key")

	// ErrSignUpNotFound is returned by Get when the participant has no readable sign-up.
	ErrSignUpNotFound = errors.New("sign-up not found")
)

// KV implements a roster source backed by a NATS JetStream KeyValue bucket.
//
// Each sign-up is one entry at "<prefix>.<activity>.<window>.<participantID>"
// holding the participant as JSON. With WithGuild the guild is an extra token
// after the prefix: "<prefix>.<guild>.<activity>.<window>.<participantID>".
// Tokens that NATS does not accept in keys are encoded with kvutil.EncodeToken.
type KV struct {
	kv     jetstream.KeyValue
	prefix string
	guild  string
	logger types.Logger
	now    func() time.Time
}

var _ types.RosterSource = (*KV)(nil)

// KVOption configures a KV roster source.
type KVOption func(*KV)

// WithKeyPrefix overrides the first key token (default "roster").
func WithKeyPrefix(prefix string) KVOption {
	return func(s *KV) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithGuild scopes every key to a guild (chat server) so several guilds can
// share one bucket and activity names.
func WithGuild(guild string) KVOption {
	return func(s *KV) {
		s.guild = guild
	}
}

// WithClock overrides the clock used to stamp Participant.UpdatedAt.
func WithClock(now func() time.Time) KVOption {
	return func(s *KV) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for skipped or malformed entries.
func WithLogger(logger types.Logger) KVOption {
	return func(s *KV) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewKV creates a roster source on top of an existing KV bucket.
//
// Parameters:
//   - kv: NATS KV bucket holding sign-ups
//   - opts: Optional configuration
//
// Returns:
//   - *KV: Initialized KV source
//
// Example:
//
//	js, _ := jetstream.New(nc)
//	kv, _ := js.KeyValue(ctx, "rota-roster")
//	src := source.NewKV(kv, source.WithLogger(logger))
//	err := src.Put(ctx, "raid", w.Key(), types.Participant{ID: "1001", DPS1Capacity: 2})
func NewKV(kv jetstream.KeyValue, opts ...KVOption) *KV {
	s := &KV{
		kv:     kv,
		prefix: DefaultRosterPrefix,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Put stores a sign-up, replacing any earlier sign-up by the same participant
// for the same activity window. The stored copy has UpdatedAt set to the
// current time; p itself is not modified.
//
// Parameters:
//   - ctx: Context for cancellation
//   - activity: Activity name
//   - window: Window key
//   - p: Participant sign-up; p.ID is required
//
// Returns:
//   - error: ErrInvalidKey for unusable key parts, or the KV error
func (s *KV) Put(ctx context.Context, activity, window string, p types.Participant) error {
	key, err := s.participantKey(activity, window, p.ID)
	if err != nil {
		return err
	}

	p = p.Clone()
	p.UpdatedAt = s.now().UTC()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal participant %q: %w", p.ID, err)
	}

	if _, err := s.kv.Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to store sign-up %q: %w", key, err)
	}

	s.logger.Debug("stored sign-up", "activity", activity, "window", window, "participant_id", p.ID)

	return nil
}

// Get returns one participant's sign-up for an activity window.
//
// Parameters:
//   - ctx: Context for cancellation
//   - activity: Activity name
//   - window: Window key
//   - participantID: Participant to look up
//
// Returns:
//   - types.Participant: The stored sign-up, including UpdatedAt
//   - error: ErrSignUpNotFound when missing or unreadable, ErrInvalidKey, or the KV error
func (s *KV) Get(ctx context.Context, activity, window, participantID string) (types.Participant, error) {
	key, err := s.participantKey(activity, window, participantID)
	if err != nil {
		return types.Participant{}, err
	}

	p, ok, err := s.load(ctx, key, key[strings.LastIndexByte(key, '.')+1:])
	if err != nil {
		return types.Participant{}, err
	}
	if !ok {
		return types.Participant{}, fmt.Errorf("%w: participant %q in %s/%s", ErrSignUpNotFound, participantID, activity, window)
	}

	return p, nil
}

// Delete removes a participant's sign-up. Removing a missing sign-up is not an error.
func (s *KV) Delete(ctx context.Context, activity, window, participantID string) error {
	key, err := s.participantKey(activity, window, participantID)
	if err != nil {
		return err
	}

	if err := s.kv.Delete(ctx, key); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete sign-up %q: %w", key, err)
	}

	return nil
}

// ListParticipants returns every sign-up of the activity window ordered by
// participant ID, so the same bucket contents always yield the same roster order.
//
// Entries that cannot be decoded are skipped with a warning.
//
// Returns:
//   - []types.Participant: Roster sorted by ID (empty if nobody signed up)
//   - error: ErrInvalidKey for unusable key parts, or the KV error
func (s *KV) ListParticipants(ctx context.Context, activity, window string) ([]types.Participant, error) {
	windowKey, err := kvutil.JoinKey(s.scope(activity, window)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	keyPrefix := windowKey + "."

	lister, err := s.kv.ListKeysFiltered(ctx, keyPrefix+"*")
	if err != nil {
		if types.IsNoKeysFoundError(err) {
			return []types.Participant{}, nil
		}

		return nil, fmt.Errorf("failed to list roster keys: %w", err)
	}
	defer func() { _ = lister.Stop() }()

	participants := make([]types.Participant, 0)
	for key := range lister.Keys() {
		p, ok, err := s.load(ctx, key, strings.TrimPrefix(key, keyPrefix))
		if err != nil {
			return nil, err
		}
		if ok {
			participants = append(participants, p)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(participants, func(a, b types.Participant) int {
		return cmp.Compare(a.ID, b.ID)
	})

	s.logger.Debug("listed roster", "activity", activity, "window", window, "participants", len(participants))

	return participants, nil
}

// load reads one roster entry. ok is false when the entry vanished or is malformed.
func (s *KV) load(ctx context.Context, key, idToken string) (types.Participant, bool, error) {
	entry, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return types.Participant{}, false, nil
		}

		return types.Participant{}, false, fmt.Errorf("failed to read sign-up %q: %w", key, err)
	}

	var p types.Participant
	if err := json.Unmarshal(entry.Value(), &p); err != nil {
		s.logger.Warn("skipping malformed sign-up", "key", key, "error", err)
		return types.Participant{}, false, nil
	}

	id, err := kvutil.DecodeToken(idToken)
	if err != nil {
		s.logger.Warn("skipping sign-up with undecodable key", "key", key, "error", err)
		return types.Participant{}, false, nil
	}
	// The key is authoritative for identity.
	p.ID = id

	return p, true, nil
}

func (s *KV) participantKey(activity, window, participantID string) (string, error) {
	key, err := kvutil.JoinKey(append(s.scope(activity, window), participantID)...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	return key, nil
}

// scope returns the key tokens that precede the participant ID.
func (s *KV) scope(activity, window string) []string {
	if s.guild == "" {
		return []string{s.prefix, activity, window}
	}

	return []string{s.prefix, s.guild, activity, window}
}
