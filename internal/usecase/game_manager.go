package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// Notifier - receives the game after every turn, human or computer.
type Notifier interface {
	Notify(ctx context.Context, playerID string, game *entity.Game)
}

// Scheduler - defers the computer's reply.
type Scheduler interface {
	Schedule(task func())
}

// GameManager runs single-player games: the human moves, the computer answers after the scheduler's delay.
type GameManager struct {
	logger     *slog.Logger
	playerRepo playerRepo
	gameRepo   gameRepo
	scheduler  Scheduler

	// turns serializes every change of game state
	turns sync.Mutex

	notifiersMutex sync.RWMutex
	notifiers      []Notifier
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, scheduler Scheduler) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		scheduler:  scheduler,
	}
}

// Subscribe - registers a notifier for turn updates.
func (that *GameManager) Subscribe(notifier Notifier) {
	that.notifiersMutex.Lock()
	defer that.notifiersMutex.Unlock()

	that.notifiers = append(that.notifiers, notifier)
}

// MakeTurn - plays the human's move and, if the game goes on, schedules the computer's reply.
// Rule violations return the current game together with the error.
func (that *GameManager) MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error) {
	game, err := that.makeHumanTurn(ctx, playerID, cell)
	if err != nil {
		return game, err
	}

	that.notify(ctx, playerID, game)

	if game.IsComputerTurn() {
		that.scheduleComputerTurn(ctx, game.ID)
	}

	return game, nil
}

// PlayComputerTurn - plays the computer's best move in the game. Stale calls fail without touching the game.
func (that *GameManager) PlayComputerTurn(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.makeComputerTurn(ctx, gameID)
	if err != nil {
		return nil, err
	}

	that.notify(ctx, game.PlayerID, game)

	return game, nil
}

// NewGame - drops the player's current game and starts an empty one.
func (that *GameManager) NewGame(ctx context.Context, playerID string) (*entity.Game, error) {
	that.turns.Lock()
	defer that.turns.Unlock()

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID != "" {
		that.deleteGame(ctx, player.GameID)
	}

	game, err := that.createGame(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	return game, nil
}

func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID string) (*entity.Game, error) {
	that.turns.Lock()
	defer that.turns.Unlock()

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID != "" {
		existingGame, err := that.gameRepo.GetByID(ctx, player.GameID)
		if err == nil {
			return existingGame, nil
		}

		if !errors.Is(err, repository.ErrGameNotFound) {
			return nil, fmt.Errorf("failed get game: %w", err)
		}
	}

	game, err := that.createGame(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	return game, nil
}

func (that *GameManager) GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGame
	}

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create new player %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id %w", err)
	}

	return player, nil
}

func (that *GameManager) makeHumanTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error) {
	that.turns.Lock()
	defer that.turns.Unlock()

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGame
	}

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("%w by id", err)
	}

	if err = tictactoe.MakeTurn(game, entity.HumanMark, cell); err != nil {
		return game, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	return game, nil
}

func (that *GameManager) makeComputerTurn(ctx context.Context, gameID string) (*entity.Game, error) {
	log := that.logger.With("method", "makeComputerTurn", "gameID", gameID)

	that.turns.Lock()
	defer that.turns.Unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("%w by id", err)
	}

	move, err := tictactoe.ComputerTurn(game)
	if err != nil {
		return nil, fmt.Errorf("failed computer turn: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	log.Debug("computer played", "cell", move.Index, "score", move.Score)

	return game, nil
}

// scheduleComputerTurn - the reply outlives the request that triggered it.
func (that *GameManager) scheduleComputerTurn(ctx context.Context, gameID string) {
	log := that.logger.With("method", "scheduleComputerTurn", "gameID", gameID)
	detached := context.WithoutCancel(ctx)

	that.scheduler.Schedule(func() {
		if _, err := that.PlayComputerTurn(detached, gameID); err != nil {
			log.Warn("computer turn dropped", "error", err)
		}
	})
}

func (that *GameManager) notify(ctx context.Context, playerID string, game *entity.Game) {
	that.notifiersMutex.RLock()
	defer that.notifiersMutex.RUnlock()

	for _, notifier := range that.notifiers {
		notifier.Notify(ctx, playerID, game)
	}
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	newGame := entity.NewGame(pkg.GenerateGameID(), player.ID)

	if err := that.gameRepo.CreateOrUpdate(ctx, newGame); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	player.GameID = newGame.ID
	player.Mark = entity.HumanMark

	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed update player: %w", err)
	}

	return newGame, nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) deleteGame(ctx context.Context, gameID string) {
	log := that.logger.With("method", "deleteGame", "gameID", gameID)

	err := that.gameRepo.DeleteByID(ctx, gameID)
	if err != nil && !errors.Is(err, repository.ErrGameNotFound) {
		log.Error("failed to delete game", "error", err)
		return
	}

	log.Info("game deleted")
}

func (that *GameManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: pkg.GenerateNewSessionID(),
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
