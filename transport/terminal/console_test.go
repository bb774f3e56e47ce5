package terminal

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solo/internal/usecase"
)

type inlineScheduler struct{}

func (inlineScheduler) Schedule(task func()) {
	task()
}

func runConsole(t *testing.T, input string) string {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewGameManager(logger, repository.NewMemoryPlayerRepository(), repository.NewMemoryGameRepository(), inlineScheduler{})

	var out bytes.Buffer
	console := New(logger, manager, strings.NewReader(input), &out, termenv.WithProfile(termenv.Ascii))
	manager.Subscribe(console)

	require.NoError(t, console.Run(context.Background()))

	return out.String()
}

func TestConsole_Run(t *testing.T) {
	t.Run("Computer wins and the game restarts", func(t *testing.T) {
		// When
		out := runConsole(t, "5\n9\n3\n4\n7\nr\nq\n")

		// Then
		assert.Contains(t, out, "That cell is taken.")
		assert.Contains(t, out, "Player O has won!")
		assert.Contains(t, out, "The game is over, press r to play again.")
		assert.True(t, strings.HasSuffix(out, "Player X's turn\nBye!\n"), out)
	})

	t.Run("Perfect play ends in a draw", func(t *testing.T) {
		// When
		out := runConsole(t, "1\n2\n7\n6\n9\n")

		// Then
		assert.Contains(t, out, "It's a Draw!")
		assert.NotContains(t, out, "has won!")
	})

	t.Run("Shows help for unknown commands", func(t *testing.T) {
		// When
		out := runConsole(t, "hello\n0\n10\n\n")

		// Then
		assert.Equal(t, 4, strings.Count(out, helpText))
	})

	t.Run("Stops when the context is canceled", func(t *testing.T) {
		// Given
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		manager := usecase.NewGameManager(logger, repository.NewMemoryPlayerRepository(), repository.NewMemoryGameRepository(), inlineScheduler{})

		reader, writer := io.Pipe()
		defer writer.Close()

		console := New(logger, manager, reader, io.Discard, termenv.WithProfile(termenv.Ascii))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// Then
		require.NoError(t, console.Run(ctx))
	})
}

func TestConsole_Render(t *testing.T) {
	// Given
	var out bytes.Buffer
	console := New(slog.New(slog.NewTextHandler(io.Discard, nil)), nil, strings.NewReader(""), &out, termenv.WithProfile(termenv.Ascii))

	game := entity.NewGame("game", "player")
	game.Board = entity.Board{
		entity.PlayerX, entity.EmptyCell, entity.EmptyCell,
		entity.EmptyCell, entity.PlayerO, entity.EmptyCell,
		entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
	}

	// When
	console.render(game)

	// Then
	expected := "\n" +
		" X | 2 | 3 \n" +
		"---+---+---\n" +
		" 4 | O | 6 \n" +
		"---+---+---\n" +
		" 7 | 8 | 9 \n" +
		"Player X's turn\n"
	assert.Equal(t, expected, out.String())
}

func TestConsole_NotifyIgnoresOtherPlayers(t *testing.T) {
	// Given
	var out bytes.Buffer
	console := New(slog.New(slog.NewTextHandler(io.Discard, nil)), nil, strings.NewReader(""), &out, termenv.WithProfile(termenv.Ascii))
	console.playerID = "me"

	// When
	console.Notify(context.Background(), "someone-else", entity.NewGame("game", "someone-else"))

	// Then
	assert.Empty(t, out.String())
}
