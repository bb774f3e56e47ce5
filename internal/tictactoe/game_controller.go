package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

// MakeTurn - applies a move for the side holding mark and passes the turn to the opponent.
func MakeTurn(game *entity.Game, mark entity.Mark, cell int) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if game.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if err := game.Board.ApplyMove(cell, mark); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	game.Turn = mark.Opponent()

	return nil
}

// ComputerTurn - searches the best reply for the computer and plays it.
func ComputerTurn(game *entity.Game) (Move, error) {
	if game.IsFinished() {
		return Move{}, apperror.ErrGameFinished
	}

	if game.Turn != entity.ComputerMark {
		return Move{}, apperror.ErrNotYourTurn
	}

	move, err := BestMove(&game.Board, entity.ComputerMark)
	if err != nil {
		return Move{}, fmt.Errorf("failed to find computer move: %w", err)
	}

	if err = MakeTurn(game, entity.ComputerMark, move.Index); err != nil {
		return Move{}, fmt.Errorf("failed to play computer move: %w", err)
	}

	return move, nil
}
