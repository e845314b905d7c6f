package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/naltoma/roguecore/config"
	"github.com/naltoma/roguecore/stage"
)

func TestGenerateIsReproducible(t *testing.T) {
	cfg := config.Default()
	ctx := context.Background()

	a, err := Generate(ctx, FamilyMove, 42, cfg)
	require.NoError(t, err)
	b, err := Generate(ctx, FamilyMove, 42, cfg)
	require.NoError(t, err)

	require.Equal(t, a, b, "same seed must produce the same descriptor")
}

func TestGenerateProducesSolvableStage(t *testing.T) {
	cfg := config.Default()
	d, err := Generate(context.Background(), FamilyAttack, 7, cfg)
	require.NoError(t, err)
	require.NoError(t, stage.Validate(d))
}

func TestGenerateDifferentFamiliesVaryContent(t *testing.T) {
	cfg := config.Default()
	move, err := Generate(context.Background(), FamilyMove, 1, cfg)
	require.NoError(t, err)
	pickup, err := Generate(context.Background(), FamilyPickup, 1, cfg)
	require.NoError(t, err)

	require.Empty(t, move.Items)
	require.NotEmpty(t, pickup.Items)
}
