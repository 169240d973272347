package logger

import (
	"bytes"
	"encoding/json"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" info ":  zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSONWithServiceField(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", Service: "credential-service", Output: &buf})

	log.Debug().Msg("dropped")
	log.Info().Str("user_id", "1").Msg("user registered")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["service"] != "credential-service" {
		t.Fatalf("expected service field, got %v", entry["service"])
	}
	if entry["message"] != "user registered" || entry["user_id"] != "1" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

// resetInit lets a test call Init as if the process had just started.
func resetInit(t *testing.T) {
	t.Helper()
	once = sync.Once{}
	instance = zerolog.Logger{}
	t.Cleanup(func() {
		once = sync.Once{}
		instance = zerolog.Logger{}
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	})
}

func TestInit_OnlyFirstCallTakesEffect(t *testing.T) {
	resetInit(t)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	l := Init(Options{Output: &second})

	l.Info().Msg("hello")

	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("expected only the first Init to take effect")
	}
}

func TestInit_SetsGlobalLevel(t *testing.T) {
	resetInit(t)

	var buf bytes.Buffer
	l := Init(Options{Level: "warn", Output: &buf})
	if got := zerolog.GlobalLevel(); got != zerolog.WarnLevel {
		t.Fatalf("expected global level warn, got %v", got)
	}

	l.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %q", buf.String())
	}
}
