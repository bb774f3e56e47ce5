package entity

// Game is a single-player session: one human against the computer on one board.
type Game struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`
	Board    Board  `json:"board"`
	Turn     Mark   `json:"player_turn"`
}

// GameState is the view of a game sent to clients, with status and winner derived from the board.
type GameState struct {
	ID     string   `json:"id"`
	Board  []string `json:"board"`
	Turn   string   `json:"player_turn"`
	Winner string   `json:"winner"`
	Status string   `json:"status"`
}

func NewGame(id, playerID string) *Game {
	return &Game{
		ID:       id,
		PlayerID: playerID,
		Board:    Board{},
		Turn:     HumanMark,
	}
}

func (that *Game) Outcome() Outcome {
	return that.Board.Evaluate()
}

func (that *Game) IsFinished() bool {
	return that.Outcome().IsTerminal()
}

func (that *Game) IsOngoing() bool {
	return !that.IsFinished()
}

func (that *Game) IsComputerTurn() bool {
	return that.IsOngoing() && that.Turn == ComputerMark
}

func (that *Game) State() *GameState {
	outcome := that.Outcome()

	state := &GameState{
		ID:     that.ID,
		Board:  that.Board.Cells(),
		Winner: outcome.WinnerLabel(),
		Status: outcome.Status(),
	}

	if !outcome.IsTerminal() {
		state.Turn = string(that.Turn)
	}

	return state
}
