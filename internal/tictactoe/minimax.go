package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

// Scores are the same at every depth: a win found in one ply is worth as much as one found in seven.
const (
	ScoreComputerWin = 10
	ScoreDraw        = 0
	ScoreHumanWin    = -10
)

// NoIndex marks a score-only result for a board that is already terminal.
const NoIndex = -1

type Move struct {
	Index int `json:"index"`
	Score int `json:"score"`
}

// BestMove - returns the optimal move for side under perfect play by both sides.
// The computer maximizes the score and the human minimizes it; among equal scores the lowest index wins.
// The board is mutated during the search and restored before returning.
func BestMove(board *entity.Board, side entity.Mark) (Move, error) {
	if !side.IsValid() {
		return Move{}, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, side)
	}

	if outcome := board.Evaluate(); outcome.IsTerminal() {
		return Move{}, fmt.Errorf("%w: %s", apperror.ErrTerminalBoard, outcome)
	}

	return minimax(board, side)
}

func minimax(board *entity.Board, side entity.Mark) (Move, error) {
	if outcome := board.Evaluate(); outcome.IsTerminal() {
		return Move{Index: NoIndex, Score: score(outcome)}, nil
	}

	best := Move{Index: NoIndex}
	for _, index := range board.EmptyIndices() {
		if err := board.ApplyMove(index, side); err != nil {
			return Move{}, fmt.Errorf("failed to explore cell %d: %w", index, err)
		}

		reply, err := minimax(board, side.Opponent())
		board.UndoMove(index)

		if err != nil {
			return Move{}, err
		}

		if best.Index == NoIndex || improves(side, reply.Score, best.Score) {
			best = Move{Index: index, Score: reply.Score}
		}
	}

	return best, nil
}

// improves is strict so ties keep the earliest move.
func improves(side entity.Mark, candidate, current int) bool {
	if side == entity.ComputerMark {
		return candidate > current
	}
	return candidate < current
}

func score(outcome entity.Outcome) int {
	switch {
	case outcome.IsWinFor(entity.ComputerMark):
		return ScoreComputerWin
	case outcome.IsWinFor(entity.HumanMark):
		return ScoreHumanWin
	default:
		return ScoreDraw
	}
}
