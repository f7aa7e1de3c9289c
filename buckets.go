package rota

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/rota/internal/kvutil"
)

// scheduleHistory is how many versions of each published schedule the bucket keeps.
const scheduleHistory = 5

// RosterBucketConfig returns the KV configuration of the sign-up bucket.
func (cfg *Config) RosterBucketConfig() jetstream.KeyValueConfig {
	return jetstream.KeyValueConfig{
		Bucket:      cfg.KVBuckets.RosterBucket,
		Description: "rota sign-ups by activity and window",
		History:     1,
	}
}

// ScheduleBucketConfig returns the KV configuration of the published schedule bucket.
func (cfg *Config) ScheduleBucketConfig() jetstream.KeyValueConfig {
	return jetstream.KeyValueConfig{
		Bucket:      cfg.KVBuckets.ScheduleBucket,
		Description: "rota published schedules by activity and window",
		History:     scheduleHistory,
	}
}

// OpenBuckets creates or opens the roster and schedule buckets named in cfg.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - js: JetStream context
//   - cfg: Configuration naming the buckets
//
// Returns:
//   - roster: Bucket for source.NewKV
//   - schedule: Bucket for publish.NewKVPublisher
//   - err: Bucket creation error
//
// Example:
//
//	js, _ := jetstream.New(nc)
//	rosterKV, scheduleKV, err := rota.OpenBuckets(ctx, js, &cfg)
//	if err != nil { /* handle */ }
//	src := source.NewKV(rosterKV)
//	pub := publish.NewKVPublisher(scheduleKV, logger, nil)
func OpenBuckets(ctx context.Context, js jetstream.JetStream, cfg *Config) (roster, schedule jetstream.KeyValue, err error) {
	roster, err = kvutil.EnsureKVBucketWithRetry(ctx, js, cfg.RosterBucketConfig(), 3)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open roster bucket: %w", err)
	}

	schedule, err = kvutil.EnsureKVBucketWithRetry(ctx, js, cfg.ScheduleBucketConfig(), 3)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open schedule bucket: %w", err)
	}

	return roster, schedule, nil
}
