package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	EmptyCell Mark = ""
)

// The human always plays X and opens the game, the computer answers with O.
const (
	HumanMark    = PlayerX
	ComputerMark = PlayerO
)

const BoardSize = 9

var winCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// WinLines returns the rows, columns and diagonals that win when uniformly marked.
func WinLines() [8][3]int {
	return winCombos
}

func (that Mark) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the mark of the other side.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Board is a 3x3 grid stored row-major: index 0 is the top-left cell, 8 the bottom-right.
type Board [BoardSize]Mark

// ParseBoard builds a board from wire cells, accepting "X", "O" and "" only.
func ParseBoard(cells []string) (Board, error) {
	var board Board

	if len(cells) != BoardSize {
		return board, fmt.Errorf("%w: expected %d cells, got %d", apperror.ErrInvalidBoard, BoardSize, len(cells))
	}

	for i, cell := range cells {
		mark := Mark(cell)
		if mark != EmptyCell && !mark.IsValid() {
			return Board{}, fmt.Errorf("%w: cell %d holds %q", apperror.ErrInvalidBoard, i, cell)
		}
		board[i] = mark
	}

	return board, nil
}

// ApplyMove puts mark on an empty cell. The board is left untouched on error.
func (that *Board) ApplyMove(index int, mark Mark) error {
	if index < 0 || index >= len(that) {
		return &InvalidMoveError{Index: index, Mark: mark, Err: apperror.ErrInvalidCell}
	}

	if !mark.IsValid() {
		return &InvalidMoveError{Index: index, Mark: mark, Err: apperror.ErrInvalidMark}
	}

	if that[index] != EmptyCell {
		return &InvalidMoveError{Index: index, Mark: mark, Err: apperror.ErrCellOccupied}
	}

	that[index] = mark

	return nil
}

// UndoMove clears a cell placed by ApplyMove. It panics on an index outside the board.
func (that *Board) UndoMove(index int) {
	that[index] = EmptyCell
}

func (that *Board) Evaluate() Outcome {
	for _, combo := range winCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a == EmptyCell || b == EmptyCell || c == EmptyCell {
			continue
		}

		if a == b && b == c {
			return WinFor(a)
		}
	}

	// the game continues while any cell is free
	for _, cell := range that {
		if cell == EmptyCell {
			return Ongoing()
		}
	}

	return Draw()
}

// EmptyIndices lists the free cells in ascending order.
func (that *Board) EmptyIndices() []int {
	indices := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == EmptyCell {
			indices = append(indices, i)
		}
	}

	return indices
}

// Cells returns the board as wire strings.
func (that *Board) Cells() []string {
	cells := make([]string, len(that))
	for i, cell := range that {
		cells[i] = string(cell)
	}

	return cells
}
