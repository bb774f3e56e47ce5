package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

const (
	commandQuit  = "q"
	commandReset = "r"

	colorX = "#E06C75"
	colorO = "#61AFEF"

	helpText = "Enter 1-9 to play a cell, r to restart, q to quit."
)

type uGame interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	NewGame(ctx context.Context, playerID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error)
}

// Console plays one local game at a time on a text terminal.
type Console struct {
	logger *slog.Logger
	uGame  uGame
	in     io.Reader

	// mu guards output and playerID, computer turns are rendered from the scheduler's goroutine.
	mu       sync.Mutex
	output   *termenv.Output
	playerID string
}

func New(logger *slog.Logger, uGame uGame, in io.Reader, out io.Writer, opts ...termenv.OutputOption) *Console {
	return &Console{
		logger: logger.With("component", "terminal"),
		uGame:  uGame,
		in:     in,
		output: termenv.NewOutput(out, opts...),
	}
}

// Run - reads commands until q, end of input or ctx is done.
func (that *Console) Run(ctx context.Context) error {
	player, err := that.uGame.GetOrCreatePlayer(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}

	that.mu.Lock()
	that.playerID = player.ID
	that.mu.Unlock()

	that.println(helpText)

	if err = that.reset(ctx); err != nil {
		return err
	}

	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				scanErr <- nil
				return
			}
		}

		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err = <-scanErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				return nil
			}

			quit, err := that.handleCommand(ctx, strings.TrimSpace(line))
			if err != nil {
				return err
			}

			if quit {
				that.println("Bye!")
				return nil
			}
		}
	}
}

// Notify - redraws the board of the console's player.
func (that *Console) Notify(_ context.Context, playerID string, game *entity.Game) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if playerID != that.playerID {
		return
	}

	that.render(game)
}

func (that *Console) handleCommand(ctx context.Context, command string) (bool, error) {
	log := that.logger.With("method", "handleCommand")

	switch command {
	case "":
		return false, nil
	case commandQuit:
		return true, nil
	case commandReset:
		return false, that.reset(ctx)
	}

	key, err := strconv.Atoi(command)
	if err != nil || key < 1 || key > entity.BoardSize {
		that.println(helpText)
		return false, nil
	}

	if _, err = that.uGame.MakeTurn(ctx, that.currentPlayer(), key-1); err != nil {
		log.Debug("turn rejected", "cell", key-1, "error", err)

		message, ok := rejectionMessage(err)
		if !ok {
			return false, fmt.Errorf("failed to make turn: %w", err)
		}

		that.println(message)
	}

	return false, nil
}

func (that *Console) reset(ctx context.Context) error {
	game, err := that.uGame.NewGame(ctx, that.currentPlayer())
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.render(game)

	return nil
}

func rejectionMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		return "That cell is taken.", true
	case errors.Is(err, apperror.ErrNotYourTurn):
		return "Wait for the computer to move.", true
	case errors.Is(err, apperror.ErrGameFinished):
		return "The game is over, press r to play again.", true
	default:
		return "", false
	}
}

// render - the caller holds mu.
func (that *Console) render(game *entity.Game) {
	var sb strings.Builder

	sb.WriteString("\n")
	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}

		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			index := row*3 + col
			cells[col] = " " + that.cell(index, game.Board[index]) + " "
		}

		sb.WriteString(strings.Join(cells, "|"))
		sb.WriteString("\n")
	}

	sb.WriteString(that.status(game))
	sb.WriteString("\n")

	if _, err := io.WriteString(that.output, sb.String()); err != nil {
		that.logger.Error("failed to render board", "error", err)
	}
}

func (that *Console) cell(index int, mark entity.Mark) string {
	switch mark {
	case entity.PlayerX:
		return that.output.String(string(mark)).Foreground(that.output.Color(colorX)).Bold().String()
	case entity.PlayerO:
		return that.output.String(string(mark)).Foreground(that.output.Color(colorO)).Bold().String()
	default:
		return that.output.String(strconv.Itoa(index + 1)).Faint().String()
	}
}

func (that *Console) status(game *entity.Game) string {
	outcome := game.Outcome()

	switch outcome.Kind {
	case entity.OutcomeWin:
		return fmt.Sprintf("Player %s has won!", that.cell(0, outcome.Winner))
	case entity.OutcomeDraw:
		return "It's a Draw!"
	default:
		return fmt.Sprintf("Player %s's turn", that.cell(0, game.Turn))
	}
}

func (that *Console) println(text string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, err := fmt.Fprintln(that.output, text); err != nil {
		that.logger.Error("failed to write", "error", err)
	}
}

func (that *Console) currentPlayer() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.playerID
}
