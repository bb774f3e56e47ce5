package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores a copy of the game", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		// Given: a stored game
		game := entity.NewGame("123", "p1")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: the caller keeps mutating its own value
		game.Board[0] = entity.PlayerX

		// Then: the stored game is unaffected
		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, stored.Board[0])

		// And: mutating the returned game does not leak back either
		stored.Board[1] = entity.PlayerO
		again, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.Board{}, again.Board)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		game, err := gameRepo.GetByID(ctx, "missing")

		require.ErrorIs(t, err, ErrGameNotFound)
		assert.Nil(t, game)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, entity.NewGame("123", "p1")))

		require.NoError(t, gameRepo.DeleteByID(ctx, "123"))
		require.ErrorIs(t, gameRepo.DeleteByID(ctx, "123"), ErrGameNotFound)
	})
}

func TestMemoryPlayerRepository(t *testing.T) {
	ctx := context.Background()
	playerRepo := NewMemoryPlayerRepository()

	// Given: a stored player
	player := &entity.Player{ID: "p1", Mark: entity.HumanMark, GameID: "g1"}
	require.NoError(t, playerRepo.CreateOrUpdate(ctx, player))

	// When: reading it back
	stored, err := playerRepo.GetByID(ctx, "p1")

	// Then: it matches, and unknown ids are reported
	require.NoError(t, err)
	assert.Equal(t, player, stored)

	_, err = playerRepo.GetByID(ctx, "p2")
	require.ErrorIs(t, err, ErrPlayerNotFound)
}
