// internal/platform/logx/logx_test.go
package logx

import (
	"bytes"
	"strings"
	"testing"

	"opticx/internal/testutil"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter(&buf, LevelWarn)

	lg.Debug("invisible")
	lg.Info("also invisible")
	lg.Warn("visible warning")

	out := buf.String()
	testutil.AssertFalse(t, strings.Contains(out, "invisible"), "below-level lines filtered")
	testutil.AssertTrue(t, strings.Contains(out, "WRN visible warning"), "warn line emitted")
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter(&buf, LevelError)

	lg.Info("before")
	lg.SetLevel(LevelDebug)
	lg.Info("after")

	out := buf.String()
	testutil.AssertFalse(t, strings.Contains(out, "before"), "filtered at error level")
	testutil.AssertTrue(t, strings.Contains(out, "after"), "emitted at debug level")
}

func TestLogger_KeyValueFormatting(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter(&buf, LevelDebug)

	lg.Info("capture done", "target", "10.0.0.1:3389", "elapsed_ms", 42)

	out := buf.String()
	testutil.AssertTrue(t, strings.Contains(out, "target=10.0.0.1:3389"), "string field")
	testutil.AssertTrue(t, strings.Contains(out, "elapsed_ms=42"), "int field")
}

func TestLogger_OddKeyValuePairs(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter(&buf, LevelDebug)

	lg.Info("msg", "orphan")

	testutil.AssertTrue(t, strings.Contains(buf.String(), "orphan=(missing)"), "odd kv marked")
}

func TestLogger_WithScope(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter(&buf, LevelDebug)
	scoped := lg.With("run_id", "run-abc", "pipeline", "rdp")

	scoped.Info("worker started", "slot", 1)

	out := buf.String()
	testutil.AssertTrue(t, strings.Contains(out, "run_id=run-abc"), "scope field carried")
	testutil.AssertTrue(t, strings.Contains(out, "pipeline=rdp"), "second scope field")
	testutil.AssertTrue(t, strings.Contains(out, "slot=1"), "call field appended")
}

func TestLogger_WithDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter(&buf, LevelDebug)
	_ = lg.With("pipeline", "web")

	lg.Info("plain line")

	testutil.AssertFalse(t, strings.Contains(buf.String(), "pipeline=web"), "parent stays unscoped")
}

func TestLogger_ErrNil(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter(&buf, LevelDebug)

	lg.Err(nil, "target", "x")

	testutil.AssertEqual(t, buf.Len(), 0, "nil error logs nothing")
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DBG", LevelDebug},
		{"info", LevelInfo},
		{"", LevelInfo},
		{"warning", LevelWarn},
		{" error ", LevelError},
		{"garbage", LevelInfo},
	}

	for _, tc := range cases {
		testutil.AssertEqual(t, ParseLevel(tc.in), tc.want, "parse "+tc.in)
	}
}
