package logging

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_WithAddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).With("run_id", "run-1")

	logger.Info("match persisted", "match_id", "m-1", "error", errors.New("boom"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["run_id"] != "run-1" {
		t.Fatalf("expected bound run_id, got %v", fields["run_id"])
	}
	if fields["match_id"] != "m-1" {
		t.Fatalf("expected match_id field, got %v", fields["match_id"])
	}
	if fields["error"] != "boom" {
		t.Fatalf("expected error field, got %v", fields["error"])
	}
}

func TestLogger_MirrorReceivesBoundArgs(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core)).With("scope_id", "club-a")

	var (
		mu   sync.Mutex
		got  []any
		msgs []string
	)
	SetMirror(func(_ context.Context, _ Level, msg string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		msgs = append(msgs, msg)
		got = append(got, args...)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.DebugContext(context.Background(), "dropped by level")
	logger.InfoContext(context.Background(), "scrape finished", "successful", 3)

	mu.Lock()
	defer mu.Unlock()
	if len(msgs) != 1 || msgs[0] != "scrape finished" {
		t.Fatalf("unexpected mirrored messages: %v", msgs)
	}
	if len(got) != 4 || got[0] != "scope_id" || got[2] != "successful" {
		t.Fatalf("unexpected mirrored args: %v", got)
	}
}

func TestZapFields_OddArgs(t *testing.T) {
	t.Parallel()

	fields := zapFields([]any{"match_id", "m-1", 42, "x", "dangling"})
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields[1].Key != "arg" {
		t.Fatalf("expected non-string key to become arg, got %q", fields[1].Key)
	}
	if fields[2].Key != "dangling" {
		t.Fatalf("expected dangling key preserved, got %q", fields[2].Key)
	}
}
