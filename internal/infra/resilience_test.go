package infra

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// RequestDeduplicator Tests
// =============================================================================

func TestNewRequestDeduplicator(t *testing.T) {
	d := NewRequestDeduplicator()
	if d == nil {
		t.Fatal("NewRequestDeduplicator returned nil")
	}
	if d.Stats() != 0 {
		t.Errorf("expected no in-flight requests, got %d", d.Stats())
	}
}

func TestRequestDeduplicator_Do_SingleRequest(t *testing.T) {
	d := NewRequestDeduplicator()

	called := 0
	result, shared, err := d.Do(context.Background(), "key1", func() (any, error) {
		called++
		return "value1", nil
	})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if shared {
		t.Error("expected shared=false for single request")
	}
	if result != "value1" {
		t.Errorf("expected result='value1', got %v", result)
	}
	if called != 1 {
		t.Errorf("expected function to be called once, got %d", called)
	}
}

func TestRequestDeduplicator_Do_ConcurrentRequests(t *testing.T) {
	d := NewRequestDeduplicator()

	var callCount int32
	var wg sync.WaitGroup
	release := make(chan struct{})

	// Start 10 concurrent requests with the same key
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, _, err := d.Do(context.Background(), "shared-key", func() (any, error) {
				atomic.AddInt32(&callCount, 1)
				<-release
				return "shared", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if result != "shared" {
				t.Errorf("expected 'shared', got %v", result)
			}
		}()
	}

	// Give the goroutines time to join the in-flight call
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&callCount); n != 1 {
		t.Errorf("expected function to be called once, got %d", n)
	}
}

func TestRequestDeduplicator_Do_DifferentKeys(t *testing.T) {
	d := NewRequestDeduplicator()

	var callCount int32
	for _, key := range []string{"a", "b", "c"} {
		_, _, err := d.Do(context.Background(), key, func() (any, error) {
			atomic.AddInt32(&callCount, 1)
			return key, nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if callCount != 3 {
		t.Errorf("expected 3 calls for different keys, got %d", callCount)
	}
}

func TestRequestDeduplicator_Do_ErrorPropagation(t *testing.T) {
	d := NewRequestDeduplicator()
	wantErr := errors.New("upstream failure")

	_, _, err := d.Do(context.Background(), "key", func() (any, error) {
		return nil, wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Errorf("expected %v, got %v", wantErr, err)
	}
}

func TestRequestDeduplicator_Do_ContextCancellation(t *testing.T) {
	d := NewRequestDeduplicator()
	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := d.Do(ctx, "slow", func() (any, error) {
		<-release
		return "late", nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRequestDeduplicator_Stats(t *testing.T) {
	d := NewRequestDeduplicator()
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _, _ = d.Do(context.Background(), "key", func() (any, error) {
			close(started)
			<-release
			return nil, nil
		})
	}()

	<-started
	if d.Stats() != 1 {
		t.Errorf("expected 1 in-flight request, got %d", d.Stats())
	}

	close(release)
	<-done

	if d.Stats() != 0 {
		t.Errorf("expected 0 in-flight requests after completion, got %d", d.Stats())
	}
}

// =============================================================================
// Throttle Tests
// =============================================================================

func TestNewThrottle_Disabled(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		th := NewThrottle(interval)
		if th.Enabled() {
			t.Errorf("throttle with interval %v should be disabled", interval)
		}
		if th.Interval() != 0 {
			t.Errorf("interval = %v, want 0", th.Interval())
		}
	}
}

func TestThrottle_DisabledDoesNotWait(t *testing.T) {
	th := NewThrottle(0)

	start := time.Now()
	for range 20 {
		if _, err := th.Wait(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("disabled throttle took %v for 20 waits", elapsed)
	}
}

func TestThrottle_SpacesRequests(t *testing.T) {
	interval := 40 * time.Millisecond
	th := NewThrottle(interval)

	const n = 4
	start := time.Now()
	for range n {
		if _, err := th.Wait(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	elapsed := time.Since(start)

	if min := interval * (n - 1); elapsed < min {
		t.Errorf("elapsed %v, want at least %v", elapsed, min)
	}
}

func TestThrottle_FirstRequestImmediate(t *testing.T) {
	th := NewThrottle(time.Second)

	waited, err := th.Wait(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if waited > 20*time.Millisecond {
		t.Errorf("first request waited %v", waited)
	}
}

func TestThrottle_ContextCanceled(t *testing.T) {
	th := NewThrottle(time.Hour)

	// Consume the initial token
	if _, err := th.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := th.Wait(ctx); err == nil {
		t.Error("expected error when context expires before the next slot")
	}
}
