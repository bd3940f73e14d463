package svgflat

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestNopHandler(t *testing.T) {
	h := slog.Handler(nopHandler{})
	if h.Enabled(context.Background(), slog.LevelError) {
		t.Error("nopHandler is enabled")
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("Handle = %v", err)
	}
	for name, derived := range map[string]slog.Handler{
		"WithAttrs": h.WithAttrs([]slog.Attr{slog.String("code", CodeSyntax)}),
		"WithGroup": h.WithGroup("svgflat"),
	} {
		if _, ok := derived.(nopHandler); !ok {
			t.Errorf("%s returned %T", name, derived)
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	SetLogger(custom)

	got := Logger()
	if got != custom {
		t.Error("Logger() did not return the custom logger set via SetLogger")
	}

	// Verify output is captured.
	got.Info("test message", "key", "value")
	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("expected log output to contain 'test message', got: %s", buf.String())
	}
}

func TestSetLoggerNil(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) left logging enabled")
	}
}

func TestParseTransformLogsFallback(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	nc := Default()
	_, diags := nc.ParseTransform("translate(10) wobble(3)")
	if !diags.HasFatal() {
		t.Fatalf("diagnostics = %v, want a fatal entry", diags)
	}
	if !strings.Contains(buf.String(), "function=wobble") {
		t.Errorf("expected debug record naming the function, got: %s", buf.String())
	}
}

func TestLoggedFallbacks(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	c := Default()
	tests := []struct {
		name string
		run  func()
		want string
	}{
		{"degenerate viewport", func() {
			c.ViewBoxTransform(ViewBox{Width: One, Height: One}, DefaultPreserveAspectRatio, Zero, One)
		}, "degenerate viewport"},
		{"zero-area box", func() {
			c.ObjectBoundingBoxTransform(Zero, Zero, Zero, One)
		}, "zero-area bounding box"},
		{"ignored viewBox", func() {
			ParseViewBox("0 0 0 10")
		}, "viewBox ignored"},
		{"truncated path command", func() {
			cmds, _ := ParsePathData("M0 0 L1")
			c.TransformPath(cmds, Identity())
		}, "path command truncated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
			tt.run()
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("log = %q, want a record containing %q", buf.String(), tt.want)
			}
		})
	}
}

func TestSetLoggerDuringParse(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	c := Default()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, diags := c.ParseTransform("wobble(1) rotate(30)"); !diags.HasFatal() {
				t.Error("missing fatal diagnostic")
			}
		}()
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetLogger(slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})))
			} else {
				SetLogger(nil)
			}
		}()
	}
	wg.Wait()
}
