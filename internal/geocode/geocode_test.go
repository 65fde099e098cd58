package geocode

import (
	"context"
	"errors"
	"testing"
)

type stubResolver struct {
	name   string
	result string
	err    error
	calls  int
}

func (s *stubResolver) Name() string { return s.name }

func (s *stubResolver) Resolve(ctx context.Context, lat, lon float64) (string, error) {
	s.calls++
	return s.result, s.err
}

func TestChainFirstSuccess(t *testing.T) {
	primary := &stubResolver{name: "primary", result: "종로구 청운동"}
	secondary := &stubResolver{name: "secondary", result: "서울"}
	chain := NewChain(primary, secondary)

	got := chain.Resolve(context.Background(), 37.5665, 126.978)
	if got != "종로구 청운동" {
		t.Errorf("expected primary result, got %s", got)
	}
	if secondary.calls != 0 {
		t.Error("secondary must not be invoked when primary succeeds")
	}
}

func TestChainFallsBackOnError(t *testing.T) {
	primary := &stubResolver{name: "primary", err: errors.New("boom")}
	secondary := &stubResolver{name: "secondary", result: "서울"}
	chain := NewChain(primary, secondary)

	got := chain.Resolve(context.Background(), 37.5665, 126.978)
	if got != "서울" {
		t.Errorf("expected secondary result, got %s", got)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Errorf("expected both tiers tried, got %d/%d", primary.calls, secondary.calls)
	}
}

func TestChainFallsBackOnEmptyResult(t *testing.T) {
	primary := &stubResolver{name: "primary", result: ""}
	secondary := &stubResolver{name: "secondary", result: "서울"}
	chain := NewChain(primary, secondary)

	if got := chain.Resolve(context.Background(), 37.5665, 126.978); got != "서울" {
		t.Errorf("expected secondary result, got %s", got)
	}
}

func TestChainPlaceholderWhenAllFail(t *testing.T) {
	primary := &stubResolver{name: "primary", err: errors.New("down")}
	secondary := &stubResolver{name: "secondary", err: ErrNoAPIKey}
	chain := NewChain(primary, secondary)

	if got := chain.Resolve(context.Background(), 37.5665, 126.978); got != Placeholder {
		t.Errorf("expected placeholder, got %s", got)
	}
}

func TestChainEmpty(t *testing.T) {
	chain := NewChain()
	if got := chain.Resolve(context.Background(), 0, 0); got != Placeholder {
		t.Errorf("expected placeholder for empty chain, got %s", got)
	}
}
