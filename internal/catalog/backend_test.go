package catalog

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

// backendTestSuite runs the same checks against any Backend implementation
func backendTestSuite(t *testing.T, newBackend func(t *testing.T) Backend) {
	bucket := []byte("test")

	t.Run("EnsureBucketIdempotent", func(t *testing.T) {
		backend := newBackend(t)
		if err := backend.EnsureBucket(bucket); err != nil {
			t.Fatalf("EnsureBucket failed: %v", err)
		}
		if err := backend.Put(bucket, []byte("k"), []byte("v")); err != nil {
			t.Fatal(err)
		}
		if err := backend.EnsureBucket(bucket); err != nil {
			t.Fatalf("EnsureBucket should be idempotent: %v", err)
		}
		got, _ := backend.Get(bucket, []byte("k"))
		if string(got) != "v" {
			t.Error("EnsureBucket dropped existing data")
		}
	})

	t.Run("PutAndGet", func(t *testing.T) {
		backend := newBackend(t)
		backend.EnsureBucket(bucket)

		value := []byte("value1")
		if err := backend.Put(bucket, []byte("key1"), value); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		value[0] = 'X'

		got, err := backend.Get(bucket, []byte("key1"))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, []byte("value1")) {
			t.Errorf("Get returned %s, want value1", got)
		}
	})

	t.Run("GetMissingKey", func(t *testing.T) {
		backend := newBackend(t)
		backend.EnsureBucket(bucket)

		got, err := backend.Get(bucket, []byte("missing"))
		if err != nil || got != nil {
			t.Errorf("Get(missing) = %q, %v; want nil, nil", got, err)
		}
	})

	t.Run("MissingBucket", func(t *testing.T) {
		backend := newBackend(t)

		if err := backend.Put([]byte("nope"), []byte("k"), []byte("v")); !errors.Is(err, ErrBucketNotFound) {
			t.Errorf("Put error = %v, want ErrBucketNotFound", err)
		}
		if _, err := backend.Get([]byte("nope"), []byte("k")); !errors.Is(err, ErrBucketNotFound) {
			t.Errorf("Get error = %v, want ErrBucketNotFound", err)
		}
		err := backend.ForEach([]byte("nope"), func(k, v []byte) error { return nil })
		if !errors.Is(err, ErrBucketNotFound) {
			t.Errorf("ForEach error = %v, want ErrBucketNotFound", err)
		}
	})

	t.Run("ForEachSorted", func(t *testing.T) {
		backend := newBackend(t)
		backend.EnsureBucket(bucket)
		for _, k := range []string{"c", "a", "b"} {
			backend.Put(bucket, []byte(k), []byte(k))
		}

		var keys []string
		err := backend.ForEach(bucket, func(k, v []byte) error {
			keys = append(keys, string(k))
			return nil
		})
		if err != nil {
			t.Fatalf("ForEach failed: %v", err)
		}
		if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
			t.Errorf("ForEach order = %v, want [a b c]", keys)
		}
	})

	t.Run("ForEachStopsOnError", func(t *testing.T) {
		backend := newBackend(t)
		backend.EnsureBucket(bucket)
		backend.Put(bucket, []byte("a"), []byte("1"))
		backend.Put(bucket, []byte("b"), []byte("2"))

		stop := errors.New("stop")
		calls := 0
		err := backend.ForEach(bucket, func(k, v []byte) error {
			calls++
			return stop
		})
		if !errors.Is(err, stop) || calls != 1 {
			t.Errorf("ForEach = %v after %d calls, want stop after 1", err, calls)
		}
	})
}

func TestMemoryBackend(t *testing.T) {
	backendTestSuite(t, func(t *testing.T) Backend {
		return NewMemoryBackend()
	})
}

func TestBboltBackend(t *testing.T) {
	backendTestSuite(t, func(t *testing.T) Backend {
		backend, err := NewBboltBackend(filepath.Join(t.TempDir(), "catalog.db"))
		if err != nil {
			t.Fatalf("failed to create backend: %v", err)
		}
		t.Cleanup(func() { backend.Close() })
		return backend
	})
}
