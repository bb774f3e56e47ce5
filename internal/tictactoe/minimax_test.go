package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

func TestBestMove(t *testing.T) {
	t.Run("Takes the immediate win", func(t *testing.T) {
		// Given: O can complete the middle row and has no other winning move before it
		board := entity.Board{
			x, x, e,
			o, o, e,
			x, e, e,
		}

		// When: searching the computer's move
		move, err := BestMove(&board, entity.ComputerMark)

		// Then: O completes its row
		require.NoError(t, err)
		assert.Equal(t, Move{Index: 5, Score: ScoreComputerWin}, move)
	})

	t.Run("Prefers the earliest of equally winning moves", func(t *testing.T) {
		// Given: O can win at 5 now, or play 2 which blocks X and forks rows 3-5 and diagonal 2-4-6
		board := entity.Board{
			x, x, e,
			o, o, e,
			e, e, e,
		}

		// When: searching the computer's move
		move, err := BestMove(&board, entity.ComputerMark)

		// Then: both score a win regardless of depth, so the lower index is kept
		require.NoError(t, err)
		assert.Equal(t, Move{Index: 2, Score: ScoreComputerWin}, move)

		// And: the computer still wins the game from there
		assert.Equal(t, entity.WinFor(entity.ComputerMark), playOut(t, board, entity.ComputerMark))
	})

	t.Run("Blocks the human's open line", func(t *testing.T) {
		// Given: X threatens the top row and O has no win of its own
		board := entity.Board{
			x, x, e,
			e, o, e,
			e, e, e,
		}

		// When: searching the computer's move
		move, err := BestMove(&board, entity.ComputerMark)

		// Then: O blocks at 2
		require.NoError(t, err)
		assert.Equal(t, 2, move.Index)
	})

	t.Run("Human side minimizes", func(t *testing.T) {
		// Given: X can complete the top row
		board := entity.Board{
			x, x, e,
			o, o, e,
			e, e, e,
		}

		// When: searching the human's move
		move, err := BestMove(&board, entity.HumanMark)

		// Then: X wins at 2
		require.NoError(t, err)
		assert.Equal(t, Move{Index: 2, Score: ScoreHumanWin}, move)
	})

	t.Run("Opening from the empty board is a corner or the center", func(t *testing.T) {
		board := entity.Board{}

		move, err := BestMove(&board, entity.ComputerMark)

		require.NoError(t, err)
		assert.Contains(t, []int{0, 2, 4, 6, 8}, move.Index)
		assert.Equal(t, ScoreDraw, move.Score)
		assert.Equal(t, entity.Board{}, board)
	})

	t.Run("Error on terminal board", func(t *testing.T) {
		boards := []entity.Board{
			{x, x, x, o, o, e, e, e, e},
			{x, o, x, o, x, o, o, x, o},
		}

		for _, board := range boards {
			before := board

			_, err := BestMove(&board, entity.ComputerMark)

			require.ErrorIs(t, err, apperror.ErrTerminalBoard)
			assert.Equal(t, before, board)
		}
	})

	t.Run("Error on invalid side", func(t *testing.T) {
		board := entity.Board{}

		_, err := BestMove(&board, entity.EmptyCell)

		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})
}

func TestBestMove_LeavesBoardAndPicksFreeCell(t *testing.T) {
	// Given: every reachable ongoing position with at least two marks
	positions := reachablePositions(entity.Board{}, entity.HumanMark, 2)
	require.NotEmpty(t, positions)

	for _, position := range positions {
		board := position.board

		// When: searching for the side to move
		move, err := BestMove(&board, position.turn)
		require.NoError(t, err)

		// Then: the board is restored and the move targets a free cell
		require.Equal(t, position.board, board)
		require.Equal(t, entity.EmptyCell, board[move.Index], "board %v", board)
	}
}

func TestBestMove_PerfectPlayIsADraw(t *testing.T) {
	t.Run("From the empty board", func(t *testing.T) {
		outcome := playOut(t, entity.Board{}, entity.HumanMark)

		assert.Equal(t, entity.Draw(), outcome)
	})

	t.Run("After X in a corner and O in the center", func(t *testing.T) {
		board := entity.Board{
			x, e, e,
			e, o, e,
			e, e, e,
		}

		outcome := playOut(t, board, entity.HumanMark)

		assert.Equal(t, entity.Draw(), outcome)
	})

	t.Run("Computer opening", func(t *testing.T) {
		outcome := playOut(t, entity.Board{}, entity.ComputerMark)

		assert.Equal(t, entity.Draw(), outcome)
	})
}

func TestBestMove_ComputerNeverLoses(t *testing.T) {
	t.Run("Human opens", func(t *testing.T) {
		tryEveryHumanLine(t, entity.Board{}, entity.HumanMark)
	})

	t.Run("Computer opens", func(t *testing.T) {
		tryEveryHumanLine(t, entity.Board{}, entity.ComputerMark)
	})
}

// playOut lets both sides follow BestMove until the game ends.
func playOut(t *testing.T, board entity.Board, turn entity.Mark) entity.Outcome {
	t.Helper()

	for !board.Evaluate().IsTerminal() {
		move, err := BestMove(&board, turn)
		require.NoError(t, err)
		require.NoError(t, board.ApplyMove(move.Index, turn))

		turn = turn.Opponent()
	}

	return board.Evaluate()
}

// tryEveryHumanLine answers every possible human move with the computer's best move.
func tryEveryHumanLine(t *testing.T, board entity.Board, turn entity.Mark) {
	t.Helper()

	if outcome := board.Evaluate(); outcome.IsTerminal() {
		require.False(t, outcome.IsWinFor(entity.HumanMark), "human won on %v", board)
		return
	}

	if turn == entity.ComputerMark {
		move, err := BestMove(&board, entity.ComputerMark)
		require.NoError(t, err)
		require.NoError(t, board.ApplyMove(move.Index, entity.ComputerMark))

		tryEveryHumanLine(t, board, entity.HumanMark)
		return
	}

	for _, index := range board.EmptyIndices() {
		next := board
		require.NoError(t, next.ApplyMove(index, entity.HumanMark))

		tryEveryHumanLine(t, next, entity.ComputerMark)
	}
}

type position struct {
	board entity.Board
	turn  entity.Mark
}

func reachablePositions(board entity.Board, turn entity.Mark, minMarks int) []position {
	seen := make(map[entity.Board]entity.Mark)
	collectPositions(board, turn, seen)

	var positions []position
	for candidate, side := range seen {
		if entity.BoardSize-len(candidate.EmptyIndices()) >= minMarks {
			positions = append(positions, position{board: candidate, turn: side})
		}
	}

	return positions
}

func collectPositions(board entity.Board, turn entity.Mark, seen map[entity.Board]entity.Mark) {
	if _, ok := seen[board]; ok || board.Evaluate().IsTerminal() {
		return
	}

	seen[board] = turn

	for _, index := range board.EmptyIndices() {
		next := board
		next[index] = turn
		collectPositions(next, turn.Opponent(), seen)
	}
}
