package config //nolint:testpackage

import (
	"bytes"
	"encoding/json"
	"flag"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lk16/flippy/reversi/internal/ai"
)

func TestLoadSelfPlayConfig_Defaults(t *testing.T) {
	for _, key := range []string{"REVERSI_BLACK_LEVEL", "REVERSI_WHITE_LEVEL", "REVERSI_GAMES", "REVERSI_PARALLEL", "REVERSI_COACH"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadSelfPlayConfig()
	require.NoError(t, err)
	require.Equal(t, &SelfPlayConfig{
		Black: DefaultBlackLevel,
		White: DefaultWhiteLevel,
		Games: DefaultGames,
	}, cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadSelfPlayConfig(t *testing.T) {
	t.Setenv("REVERSI_BLACK_LEVEL", "expert")
	t.Setenv("REVERSI_WHITE_LEVEL", "semi_advanced")
	t.Setenv("REVERSI_GAMES", "10")
	t.Setenv("REVERSI_PARALLEL", "3")
	t.Setenv("REVERSI_COACH", "true")

	cfg, err := LoadSelfPlayConfig()
	require.NoError(t, err)
	require.Equal(t, &SelfPlayConfig{
		Black:    ai.Expert,
		White:    ai.SemiAdvanced,
		Games:    10,
		Parallel: 3,
		Coach:    true,
	}, cfg)
}

func TestLoadSelfPlayConfig_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"REVERSI_BLACK_LEVEL", "master"},
		{"REVERSI_WHITE_LEVEL", "7"},
		{"REVERSI_GAMES", "many"},
		{"REVERSI_PARALLEL", "1.5"},
		{"REVERSI_COACH", "yes"},
	}

	for _, test := range tests {
		t.Run(test.key, func(t *testing.T) {
			t.Setenv(test.key, test.value)
			_, err := LoadSelfPlayConfig()
			require.Error(t, err)
		})
	}
}

func TestSelfPlayConfig_RegisterFlags(t *testing.T) {
	cfg := &SelfPlayConfig{Black: ai.Beginner, White: ai.Beginner, Games: 1}

	fs := flag.NewFlagSet("selfplay", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-white", "expert", "-games", "4", "-coach"}))

	require.Equal(t, ai.Beginner, cfg.Black)
	require.Equal(t, ai.Expert, cfg.White)
	require.Equal(t, 4, cfg.Games)
	require.True(t, cfg.Coach)

	fs = flag.NewFlagSet("selfplay", flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	cfg.RegisterFlags(fs)
	require.Error(t, fs.Parse([]string{"-black", "master"}))
}

func TestSelfPlayConfig_Validate(t *testing.T) {
	require.Error(t, (&SelfPlayConfig{Games: 0}).Validate())
	require.Error(t, (&SelfPlayConfig{Games: 1, Parallel: -2}).Validate())
	require.NoError(t, (&SelfPlayConfig{Games: 1}).Validate())
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"ERROR", slog.LevelError},
	}

	for _, test := range tests {
		level, err := ParseLogLevel(test.input)
		require.NoError(t, err)
		require.Equal(t, test.want, level)
	}

	_, err := ParseLogLevel("TRACE")
	require.Error(t, err)
}

func TestNewLogHandler(t *testing.T) {
	var buf bytes.Buffer

	handler, err := NewLogHandler(&buf, "WARN", "json")
	require.NoError(t, err)

	logger := slog.New(handler)
	logger.Info("hidden")
	logger.Warn("shown", "key", 1)

	require.JSONEq(t, `{"level":"WARN","msg":"shown","key":1}`, removeTime(t, buf.Bytes()))

	buf.Reset()
	handler, err = NewLogHandler(&buf, "", "")
	require.NoError(t, err)
	slog.New(handler).Info("text")
	require.Contains(t, buf.String(), "level=INFO msg=text")

	_, err = NewLogHandler(&buf, "INFO", "xml")
	require.Error(t, err)

	_, err = NewLogHandler(&buf, "LOUD", "text")
	require.Error(t, err)
}

// removeTime drops the time attribute from a JSON log line.
func removeTime(t *testing.T, line []byte) string {
	t.Helper()

	var attrs map[string]any
	require.NoError(t, json.Unmarshal(line, &attrs))
	require.Contains(t, attrs, "time")
	delete(attrs, "time")

	out, err := json.Marshal(attrs)
	require.NoError(t, err)
	return string(out)
}
