package api

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildRepositories_FallsBackToMemory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repos, cleanup := BuildRepositories(context.Background(), Config{}, logger)
	defer cleanup()

	require.False(t, repos.Durable)
	require.NotNil(t, repos.Orders)
	require.NotNil(t, repos.Products)
	require.NotNil(t, repos.Users)
}
