package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/rota/internal/hash"
	"github.com/arloliu/rota/internal/kvutil"
	"github.com/arloliu/rota/internal/logging"
	"github.com/arloliu/rota/internal/metrics"
	"github.com/arloliu/rota/types"
)

// DefaultSchedulePrefix is the first key token of every published schedule.
const DefaultSchedulePrefix = "schedule"

// ErrNotPublished is returned by Get when no schedule exists for the activity window.
var ErrNotPublished = errors.New("schedule not published")

// Record is the stored form of a published schedule.
type Record struct {
	Version     int64           `json:"version"`
	Activity    string          `json:"activity"`
	Window      string          `json:"window"`
	Digest      string          `json:"digest"`
	Capacity    int             `json:"capacity"`
	Quota       types.RoleQuota `json:"quota"`
	Rounds      []types.Round   `json:"rounds"`
	PublishedAt time.Time       `json:"publishedAt"`
}

// Result converts the record back into a schedule result.
func (r Record) Result() types.ScheduleResult {
	return types.ScheduleResult{
		Capacity: r.Capacity,
		Quota:    r.Quota,
		Rounds:   r.Rounds,
	}.Clone()
}

// KVPublisher publishes schedules to NATS KV at "schedule.<activity>.<window>".
type KVPublisher struct {
	kv        jetstream.KeyValue
	prefix    string
	keyPrefix string

	mu             sync.Mutex
	currentVersion int64

	now     func() time.Time
	logger  types.Logger
	metrics types.PublisherMetrics
}

var _ types.SchedulePublisher = (*KVPublisher)(nil)

// NewKVPublisher creates a new schedule publisher.
//
// Parameters:
//   - kv: NATS KV bucket for published schedules
//   - logger: Logger for publishing events (no-op if nil)
//   - metrics: Metrics collector for publish outcomes (no-op if nil)
//
// Returns:
//   - *KVPublisher: A new publisher instance
//
// Example:
//
//	pub := publish.NewKVPublisher(kv, logger, nil)
//	if err := pub.DiscoverHighestVersion(ctx); err != nil { /* handle */ }
//	sched, err := rota.NewScheduler(&cfg, src, strategy.NewBatchRemainder(), rota.WithPublisher(pub))
func NewKVPublisher(kv jetstream.KeyValue, logger types.Logger, m types.PublisherMetrics) *KVPublisher {
	if logger == nil {
		logger = logging.NewNop()
	}
	if m == nil {
		m = metrics.NewNop()
	}

	return &KVPublisher{
		kv:        kv,
		prefix:    DefaultSchedulePrefix,
		keyPrefix: DefaultSchedulePrefix + ".",
		now:       time.Now,
		logger:    logger,
		metrics:   m,
	}
}

// DiscoverHighestVersion scans KV for the highest existing schedule version.
//
// Call it once before the first Publish so a restarted publisher continues
// the version sequence instead of starting over.
//
// Returns:
//   - error: Nil on success, error on KV access failure
func (p *KVPublisher) DiscoverHighestVersion(ctx context.Context) error {
	keys, err := p.listKeys(ctx, p.keyPrefix+">")
	if err != nil {
		return err
	}

	highestVersion := int64(0)
	for _, key := range keys {
		rec, err := p.read(ctx, key)
		if err != nil {
			p.logger.Debug("skipping unreadable schedule", "key", key, "error", err)
			continue
		}
		highestVersion = max(highestVersion, rec.Version)
	}

	p.mu.Lock()
	p.currentVersion = max(p.currentVersion, highestVersion)
	p.mu.Unlock()

	if highestVersion > 0 {
		p.logger.Info("discovered existing schedules", "highest_version", highestVersion, "checked_keys", len(keys))
	} else {
		p.logger.Debug("no existing schedules found", "checked_keys", len(keys))
	}

	return nil
}

// Publish stores the schedule of an activity window under a new version.
//
// Republishing a schedule whose digest and capacity match the stored record
// is a no-op, so repeated runs over an unchanged roster keep their version.
//
// Parameters:
//   - ctx: Context for cancellation
//   - activity: Activity name
//   - window: Window key
//   - result: Schedule to publish
//
// Returns:
//   - error: Wraps types.ErrPublishFailed on marshaling or KV failure
func (p *KVPublisher) Publish(ctx context.Context, activity, window string, result types.ScheduleResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.publish(ctx, activity, window, result)
	p.metrics.RecordPublish(activity, err == nil)

	return err
}

func (p *KVPublisher) publish(ctx context.Context, activity, window string, result types.ScheduleResult) error {
	key, err := p.key(activity, window)
	if err != nil {
		return err
	}

	digest := hash.Hex(hash.Schedule(result))

	existing, err := p.read(ctx, key)
	switch {
	case err == nil && existing.Digest == digest && existing.Capacity == result.Capacity:
		p.logger.Debug("schedule unchanged, skipping publish", "key", key, "version", existing.Version)
		return nil
	case err != nil && !errors.Is(err, ErrNotPublished):
		p.logger.Debug("failed to read previous schedule", "key", key, "error", err)
	}

	rec := Record{
		Version:     p.currentVersion + 1,
		Activity:    activity,
		Window:      window,
		Digest:      digest,
		Capacity:    result.Capacity,
		Quota:       result.Quota,
		Rounds:      result.Clone().Rounds,
		PublishedAt: p.now().UTC(),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: marshal schedule: %w", types.ErrPublishFailed, err)
	}

	if _, err := p.kv.Put(ctx, key, data); err != nil {
		return fmt.Errorf("%w: %w", types.ErrPublishFailed, err)
	}
	p.currentVersion = rec.Version

	p.logger.Info("schedule published",
		"activity", activity,
		"window", window,
		"version", rec.Version,
		"rounds", len(rec.Rounds),
		"digest", digest)

	return nil
}

// Get reads the published schedule of an activity window.
//
// Returns:
//   - Record: The stored record
//   - error: ErrNotPublished if nothing was published, or the KV error
func (p *KVPublisher) Get(ctx context.Context, activity, window string) (Record, error) {
	key, err := p.key(activity, window)
	if err != nil {
		return Record{}, err
	}

	return p.read(ctx, key)
}

// Cleanup removes every published schedule of an activity.
//
// Deletion continues past individual failures; the first failure is returned.
func (p *KVPublisher) Cleanup(ctx context.Context, activity string) error {
	activityKey, err := kvutil.JoinKey(p.prefix, activity)
	if err != nil {
		return fmt.Errorf("invalid activity %q: %w", activity, err)
	}

	keys, err := p.listKeys(ctx, activityKey+".*")
	if err != nil {
		return err
	}

	var firstErr error
	deletedCount := 0
	for _, key := range keys {
		if err := p.kv.Delete(ctx, key); err != nil {
			p.logger.Warn("failed to delete schedule", "key", key, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to delete schedule %q: %w", key, err)
			}

			continue
		}
		deletedCount++
	}

	if deletedCount > 0 {
		p.logger.Info("cleaned up schedules", "activity", activity, "deleted_count", deletedCount)
	}

	return firstErr
}

// CurrentVersion returns the last version written or discovered.
func (p *KVPublisher) CurrentVersion() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.currentVersion
}

func (p *KVPublisher) key(activity, window string) (string, error) {
	key, err := kvutil.JoinKey(p.prefix, activity, window)
	if err != nil {
		return "", fmt.Errorf("invalid schedule key (activity %q, window %q): %w", activity, window, err)
	}

	return key, nil
}

func (p *KVPublisher) read(ctx context.Context, key string) (Record, error) {
	entry, err := p.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return Record{}, fmt.Errorf("%w: %s", ErrNotPublished, key)
		}

		return Record{}, fmt.Errorf("failed to read schedule %q: %w", key, err)
	}

	var rec Record
	if err := json.Unmarshal(entry.Value(), &rec); err != nil {
		return Record{}, fmt.Errorf("failed to unmarshal schedule %q: %w", key, err)
	}

	return rec, nil
}

func (p *KVPublisher) listKeys(ctx context.Context, filter string) ([]string, error) {
	lister, err := p.kv.ListKeysFiltered(ctx, filter)
	if err != nil {
		if types.IsNoKeysFoundError(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to list KV keys: %w", err)
	}
	defer func() { _ = lister.Stop() }()

	var keys []string
	for key := range lister.Keys() {
		if strings.HasPrefix(key, p.keyPrefix) {
			keys = append(keys, key)
		}
	}

	return keys, nil
}
