package entity

type OutcomeKind int

const (
	OutcomeOngoing OutcomeKind = iota
	OutcomeWin
	OutcomeDraw
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerTie = "-"
)

// Outcome is derived from the board contents only. Winner is set for OutcomeWin.
type Outcome struct {
	Kind   OutcomeKind
	Winner Mark
}

func Ongoing() Outcome {
	return Outcome{Kind: OutcomeOngoing}
}

func WinFor(mark Mark) Outcome {
	return Outcome{Kind: OutcomeWin, Winner: mark}
}

func Draw() Outcome {
	return Outcome{Kind: OutcomeDraw}
}

func (that Outcome) IsTerminal() bool {
	return that.Kind != OutcomeOngoing
}

func (that Outcome) IsWinFor(mark Mark) bool {
	return that.Kind == OutcomeWin && that.Winner == mark
}

func (that Outcome) Status() string {
	if that.IsTerminal() {
		return StatusFinished
	}
	return StatusOngoing
}

// WinnerLabel returns the winning mark, PlayerTie for a draw or an empty string while the game is on.
func (that Outcome) WinnerLabel() string {
	switch that.Kind {
	case OutcomeWin:
		return string(that.Winner)
	case OutcomeDraw:
		return PlayerTie
	default:
		return ""
	}
}

func (that Outcome) String() string {
	switch that.Kind {
	case OutcomeWin:
		return "win " + string(that.Winner)
	case OutcomeDraw:
		return "draw"
	default:
		return "ongoing"
	}
}
