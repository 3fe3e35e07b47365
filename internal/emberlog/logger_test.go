package emberlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewTextHandlerWritesPlainLines(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := New(buf, "text", slog.LevelInfo)

	logger.Info("hello", "answer", 42)

	line := buf.String()
	if !strings.Contains(line, "hello") || !strings.Contains(line, "answer=42") {
		t.Fatalf("got %q", line)
	}
}

func TestNewJSONHandlerWritesJSONLines(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := New(buf, "json", slog.LevelInfo)

	logger.Info("hello")

	line := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(line), "{") {
		t.Fatalf("got %q, want a JSON object", line)
	}
}

func TestStageTagIsAddedWhenContextCarriesOne(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := New(buf, "text", slog.LevelInfo)

	ctx := WithStage(context.Background(), StageResolve)
	logger.InfoContext(ctx, "resolving symbols")

	line := buf.String()
	if !strings.Contains(line, "stage=resolve") {
		t.Fatalf("got %q, want a stage=resolve attribute", line)
	}
}

func TestStageTagAbsentWithoutContextTag(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := New(buf, "text", slog.LevelInfo)

	logger.InfoContext(context.Background(), "no stage here")

	if strings.Contains(buf.String(), "stage=") {
		t.Fatalf("got %q, want no stage attribute", buf.String())
	}
}

func TestParseLevelDefaultsToInfoOnUnknownInput(t *testing.T) {
	if got := ParseLevel("garbage"); got != slog.LevelInfo {
		t.Fatalf("got %v, want LevelInfo", got)
	}
	if got := ParseLevel("debug"); got != slog.LevelDebug {
		t.Fatalf("got %v, want LevelDebug", got)
	}
}

func TestWrapStageJoinsStageNoteOntoError(t *testing.T) {
	ctx := WithStage(context.Background(), StageTypes)
	base := errors.New("boom")

	wrapped := WrapStage(ctx, base)
	if !strings.Contains(wrapped.Error(), "stage: types") {
		t.Fatalf("got %q, want it to mention stage: types", wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Fatalf("wrapped error lost the original via errors.Is")
	}
}

func TestWrapStageIsNoopWithoutATaggedContext(t *testing.T) {
	base := errors.New("boom")
	if got := WrapStage(context.Background(), base); got != base {
		t.Fatalf("got %v, want the original error unchanged", got)
	}
}

func TestWrapStageNilErrorStaysNil(t *testing.T) {
	ctx := WithStage(context.Background(), StageLex)
	if err := WrapStage(ctx, nil); err != nil {
		t.Fatalf("got %v, want nil", err)
	}
}
