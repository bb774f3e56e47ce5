package apperror

import "errors"

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrNoActiveGame = errors.New("no active game")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrInvalidMark  = errors.New("invalid mark")
	ErrInvalidBoard = errors.New("invalid board")

	// ErrTerminalBoard is returned when a search is requested for a board that is already won or drawn.
	ErrTerminalBoard = errors.New("board is already terminal")
)
