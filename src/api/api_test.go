package main

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func runLogFlags(t *testing.T, args ...string) (level, file string) {
	t.Helper()
	cmd := &cli.Command{
		Name:   "spycats",
		Flags:  logFlags(&level, &file),
		Action: func(context.Context, *cli.Command) error { return nil },
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"spycats"}, args...)))
	return level, file
}

func TestLogFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, k := range []string{"LOG_LEVEL", "LOG_FILE"} {
			t.Setenv(k, "") // restored on cleanup
			require.NoError(t, os.Unsetenv(k))
		}
		level, file := runLogFlags(t)
		assert.Equal(t, "info", level)
		assert.Empty(t, file)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FILE", "/tmp/spycats.log")
		level, file := runLogFlags(t)
		assert.Equal(t, "debug", level)
		assert.Equal(t, "/tmp/spycats.log", file)
	})

	t.Run("flag wins over environment", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		level, _ := runLogFlags(t, "--log-level", "warn")
		assert.Equal(t, "warn", level)
	})
}
