package entity

import "fmt"

// InvalidMoveError reports a refused ApplyMove. It unwraps to one of the apperror sentinels.
type InvalidMoveError struct {
	Index int
	Mark  Mark
	Err   error
}

func (that *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move %q at cell %d: %v", that.Mark, that.Index, that.Err)
}

func (that *InvalidMoveError) Unwrap() error {
	return that.Err
}
