package pathkit

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares floats, including those nested in points and segments, with
// an absolute tolerance.
func approx(margin float64) cmp.Option {
	return cmpopts.EquateApprox(0, margin)
}

func assertNear(t *testing.T, got, want Point, epsilon float64) {
	t.Helper()
	if d := got.Distance(want); d > epsilon {
		t.Errorf("got %s, want %s", got, want)
	}
}

func mustParsePath(t testing.TB, d string) []Segment {
	t.Helper()
	segs, err := ParsePathData(d)
	if err != nil {
		t.Fatal(err)
	}
	return segs
}

func kinds(segs []Segment) []SegmentKind {
	out := make([]SegmentKind, len(segs))
	for i, seg := range segs {
		out[i] = seg.Kind
	}
	return out
}

func countKind(segs []Segment, k SegmentKind) int {
	n := 0
	for _, seg := range segs {
		if seg.Kind == k {
			n++
		}
	}
	return n
}

// captureLogs directs the package's log output to the returned buffer for the
// rest of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}
