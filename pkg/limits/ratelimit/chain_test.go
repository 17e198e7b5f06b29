package ratelimit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

// orderLimiter records when it admits work, to check chain nesting.
type orderLimiter struct {
	name string
	log  *[]string
}

func (o orderLimiter) Limit(ctx context.Context, work Work) error {
	*o.log = append(*o.log, o.name+":enter")
	err := work(ctx)
	*o.log = append(*o.log, o.name+":exit")
	return err
}

func TestNewChain_RejectsInvalidWindow(t *testing.T) {
	_, err := NewChain([]RateWindow{MustRateWindow(1, time.Second), {Count: 0, Duration: time.Second}})
	if !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("Expected ErrInvalidWindow, got %v", err)
	}
}

func TestChain_NestsInConfiguredOrder(t *testing.T) {
	var log []string
	chain := NewChainFromLimiters(
		orderLimiter{name: "L1", log: &log},
		orderLimiter{name: "L2", log: &log},
		nil,
		orderLimiter{name: "L3", log: &log},
	)
	if chain.Len() != 3 {
		t.Fatalf("Expected nil limiters to be skipped, got %d", chain.Len())
	}

	err := chain.Limit(context.Background(), func(context.Context) error {
		log = append(log, "work")
		return nil
	})
	if err != nil {
		t.Fatalf("Limit() error = %v", err)
	}

	want := []string{"L1:enter", "L2:enter", "L3:enter", "work", "L3:exit", "L2:exit", "L1:exit"}
	if len(log) != len(want) {
		t.Fatalf("Expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, log)
		}
	}
}

func TestChain_RunsWorkOncePerCall(t *testing.T) {
	chain, err := NewChain(DefaultWindows(), WithClock(clockwork.NewFakeClock()))
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}

	var runs atomic.Int32
	if err := chain.Limit(context.Background(), func(context.Context) error {
		runs.Add(1)
		return nil
	}); err != nil {
		t.Fatalf("Limit() error = %v", err)
	}
	if runs.Load() != 1 {
		t.Errorf("Expected work to run once, ran %d times", runs.Load())
	}
}

func TestChain_EmptyIsPassthrough(t *testing.T) {
	chain, err := NewChain(nil)
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}

	const callers = 50
	var started sync.WaitGroup
	started.Add(callers)
	release := make(chan struct{})
	var wg sync.WaitGroup

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = chain.Limit(context.Background(), func(context.Context) error {
				started.Done()
				<-release
				return nil
			})
		}()
	}

	allStarted := make(chan struct{})
	go func() {
		started.Wait()
		close(allStarted)
	}()

	select {
	case <-allStarted:
	case <-time.After(2 * time.Second):
		close(release)
		t.Fatal("Expected every caller to run concurrently without throttling")
	}
	close(release)
	wg.Wait()
}

func TestChain_EmptyReturnsWorkResult(t *testing.T) {
	chain := NewChainFromLimiters()
	got, err := Do(context.Background(), chain, func(context.Context) (int, error) { return 42, nil })
	if err != nil || got != 42 {
		t.Errorf("Do() = %d, %v, want 42, nil", got, err)
	}
}

func TestChain_TightestWindowDominates(t *testing.T) {
	chain, err := NewChain([]RateWindow{
		MustRateWindow(1, 100*time.Millisecond),
		MustRateWindow(2, 100*time.Millisecond),
	})
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}

	var inFlight, maxInFlight atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = chain.Limit(context.Background(), func(context.Context) error {
				n := inFlight.Add(1)
				for {
					cur := maxInFlight.Load()
					if n <= cur || maxInFlight.CompareAndSwap(cur, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				inFlight.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()

	if got := maxInFlight.Load(); got != 1 {
		t.Errorf("Expected max concurrency 1, got %d", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := chain.Drain(ctx); err != nil {
		t.Errorf("Drain() error = %v", err)
	}
}

func TestChain_RequiresEveryWindow(t *testing.T) {
	var clock fakeClock = clockwork.NewFakeClock()
	fast, _ := NewWindowLimiter(MustRateWindow(5, 100*time.Millisecond), WithClock(clock))
	slow, _ := NewWindowLimiter(MustRateWindow(1, time.Second), WithClock(clock))
	chain := NewChainFromLimiters(fast, slow)

	if err := chain.Limit(context.Background(), noop); err != nil {
		t.Fatalf("Limit() error = %v", err)
	}

	admitted := make(chan struct{})
	go func() {
		_ = chain.Limit(context.Background(), func(context.Context) error {
			close(admitted)
			return nil
		})
	}()

	// The fast window frees up, the slow one does not.
	clock.Advance(100 * time.Millisecond)
	select {
	case <-admitted:
		t.Fatal("Expected work to wait for the slow window")
	case <-time.After(30 * time.Millisecond):
	}

	clock.Advance(900 * time.Millisecond)
	select {
	case <-admitted:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected work to be admitted once every window had a permit")
	}
}

func TestChain_ErrorPassesThroughEveryLayer(t *testing.T) {
	chain, err := NewChain(DefaultWindows(), WithClock(clockwork.NewFakeClock()))
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}

	boom := errors.New("boom")
	_, err = Do(context.Background(), chain, func(context.Context) (string, error) { return "", boom })
	if err != boom {
		t.Errorf("Expected the exact work error, got %v", err)
	}

	for _, l := range chain.Limiters() {
		wl := l.(*WindowLimiter)
		if wl.Pending() != 1 {
			t.Errorf("Expected %s to schedule its release, got %d pending", wl.Window(), wl.Pending())
		}
	}
}

func TestChain_CancelAbortsAdmissionOnly(t *testing.T) {
	var clock fakeClock = clockwork.NewFakeClock()
	chain, err := NewChain([]RateWindow{MustRateWindow(2, time.Second), MustRateWindow(1, time.Second)}, WithClock(clock))
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}

	if err := chain.Limit(context.Background(), noop); err != nil {
		t.Fatalf("Limit() error = %v", err)
	}

	// Holds an outer permit, then waits on the inner window and gives up.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = chain.Limit(ctx, func(context.Context) error {
		t.Error("work must not run after cancellation")
		return nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected DeadlineExceeded, got %v", err)
	}

	outer := chain.Limiters()[0].(*WindowLimiter)
	inner := chain.Limiters()[1].(*WindowLimiter)
	if outer.InUse() != 2 || outer.Pending() != 2 {
		t.Errorf("Expected the outer permit to cool down normally, got in use %d, pending %d", outer.InUse(), outer.Pending())
	}
	if inner.InUse() != 1 {
		t.Errorf("Expected inner window unaffected, got %d in use", inner.InUse())
	}

	clock.Advance(time.Second)
	waitFor(t, time.Second, func() bool { return outer.InUse() == 0 && inner.InUse() == 0 }, "all releases")
}

func TestChain_Windows(t *testing.T) {
	chain, err := NewChain(DefaultWindows())
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}
	got := chain.Windows()
	want := DefaultWindows()
	if len(got) != len(want) {
		t.Fatalf("Expected %d windows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("window %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDo_NilLimiter(t *testing.T) {
	got, err := Do(context.Background(), nil, func(context.Context) (string, error) { return "ok", nil })
	if err != nil || got != "ok" {
		t.Errorf("Do() = %q, %v, want ok, nil", got, err)
	}
}
