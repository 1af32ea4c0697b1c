package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAgentSeeds(t *testing.T) {
	t.Run("zero stays time-seeded for both colors", func(t *testing.T) {
		red, blue := agentSeeds(0)
		require.Zero(t, red)
		require.Zero(t, blue)
	})

	t.Run("nonzero derives distinct deterministic seeds", func(t *testing.T) {
		red, blue := agentSeeds(42)
		require.Equal(t, uint64(42), red)
		require.Equal(t, uint64(43), blue)
	})
}
