package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_FailsWithoutDatabase(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := run(logger, "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "POSTGRES_DSN")
}
