package ratelimit_test

import (
	"testing"

	"github.com/xeptore/itms/ratelimit"
)

func TestPageFetchSleep(t *testing.T) {
	t.Parallel()
	for range 100 {
		ms := ratelimit.PageFetchSleep().Milliseconds()
		if ms < 1000 || ms > 3000 {
			t.Errorf("expected 1000 <= ms <= 3000, got %d", ms)
		}
	}
}
