package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestWatch_CallsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2"), 0o600); err != nil {
		t.Fatalf("write temp input: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, 10*time.Millisecond, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// The watcher registers asynchronously; keep rewriting until it notices.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
loop:
	for {
		select {
		case <-changed:
			break loop
		case <-tick.C:
			if err := os.WriteFile(path, []byte("a,b\n3,4"), 0o600); err != nil {
				t.Fatalf("rewrite input: %v", err)
			}
		case <-deadline:
			cancel()
			<-done
			t.Fatal("onChange was not called within 5s")
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() returned error = %v", err)
	}
}

func TestWatch_IgnoresSiblingFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2"), 0o600); err != nil {
		t.Fatalf("write temp input: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	calls := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, 0, func() { calls <- struct{}{} })
	}()

	for i := 0; i < 5; i++ {
		_ = os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x,y"), 0o600)
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	<-done
	if n := len(calls); n != 0 {
		t.Errorf("onChange called %d times for sibling writes, want 0", n)
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	defer goleak.VerifyNone(t)

	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "data.csv"), 0, func() {})
	if err == nil {
		t.Fatal("expected error watching a missing directory")
	}
}
