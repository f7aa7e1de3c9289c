package kvutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	rotatest "github.com/arloliu/rota/testing"
)

func TestEnsureKVBucketWithRetry(t *testing.T) {
	_, nc := rotatest.StartEmbeddedNATS(t)

	ctx := context.Background()
	js := rotatest.JetStream(t, nc)

	t.Run("creates a missing bucket", func(t *testing.T) {
		kv, err := EnsureKVBucketWithRetry(ctx, js, jetstream.KeyValueConfig{Bucket: "retry-1"}, 3)
		require.NoError(t, err)
		require.Equal(t, "retry-1", kv.Bucket())
	})

	t.Run("opens an existing bucket", func(t *testing.T) {
		cfg := jetstream.KeyValueConfig{Bucket: "retry-2", History: 1}

		_, err := js.CreateKeyValue(ctx, cfg)
		require.NoError(t, err)

		kv, err := EnsureKVBucketWithRetry(ctx, js, cfg, 0)
		require.NoError(t, err)
		require.NotNil(t, kv)
	})

	t.Run("concurrent callers all get the bucket", func(t *testing.T) {
		const workers = 10
		cfg := jetstream.KeyValueConfig{Bucket: "retry-3", History: 1}

		var wg sync.WaitGroup
		errs := make(chan error, workers)
		kvs := make([]jetstream.KeyValue, workers)

		for i := range workers {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()

				kv, err := EnsureKVBucketWithRetry(ctx, js, cfg, 5)
				if err != nil {
					errs <- err
					return
				}
				kvs[idx] = kv
			}(i)
		}

		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}
		for i, kv := range kvs {
			require.NotNil(t, kv, "worker %d should have a KV instance", i)
		}
	})

	t.Run("expired context fails", func(t *testing.T) {
		shortCtx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		time.Sleep(time.Millisecond)

		_, err := EnsureKVBucketWithRetry(shortCtx, js, jetstream.KeyValueConfig{Bucket: "retry-4"}, 3)
		require.Error(t, err)
	})
}
