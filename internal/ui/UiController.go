package ui

import (
	"context"

	"github.com/Mshel/gobble/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
	GameOverScreen
)

// Messages for state transitions
type IntroSubmitMsg int // 0 for Play, 1 for Quit
type SetupSubmitMsg struct {
	Name string
}

type GameOverMsg struct {
	Result      game.RoundResult
	Leaderboard []game.RankEntry
	PlayerName  string
}

type PlayAgainMsg struct{}

type ControllerModel struct {
	CurrentScreen Screen
	Config        game.Config
	Logger        *log.Logger

	IntroModel    tea.Model
	SetupModel    tea.Model
	GameModel     tea.Model
	GameOverModel tea.Model

	stopGame     context.CancelFunc
	ScreenWidth  int
	ScreenHeight int
}

func NewControllerModel(cfg game.Config, logger *log.Logger, screenWidth int, screenHeight int) ControllerModel {
	if logger == nil {
		logger = log.Default()
	}
	return ControllerModel{
		CurrentScreen: IntroScreen,
		Config:        cfg,
		Logger:        logger,

		IntroModel: NewIntroModel(screenWidth, screenHeight),
		SetupModel: NewInitialSetupModel(cfg.PlayerName, screenWidth, screenHeight),

		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	case GameOverScreen:
		if m.GameOverModel != nil {
			return m.GameOverModel.View()
		}
		return ""
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	// --- 1. Global Key Check (Check before the main switch) ---
	if msg, ok := msg.(tea.KeyMsg); ok {
		// q is a valid name character on the setup screen
		if msg.String() == "ctrl+c" || (msg.String() == "q" && m.CurrentScreen != SetupScreen) {
			m.stop()
			return m, tea.Quit
		}
	}

	// --- 2. State Transition Message Handling ---
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.IntroModel, _ = m.IntroModel.Update(msg)
		m.SetupModel, _ = m.SetupModel.Update(msg)
		if m.GameModel != nil {
			m.GameModel, _ = m.GameModel.Update(msg)
		}
		if m.GameOverModel != nil {
			m.GameOverModel, _ = m.GameOverModel.Update(msg)
		}
		return m, nil

	case IntroSubmitMsg:
		if msg == 0 {
			m.CurrentScreen = SetupScreen
			return m, m.SetupModel.Init()
		}
		return m, tea.Quit

	case SetupSubmitMsg:
		gameModel, err := m.startGame(msg.Name)
		if err != nil {
			m.Logger.Error("Could not start game", "error", err)
			return m, tea.Quit
		}
		m.CurrentScreen = GameScreen
		m.GameModel = gameModel
		return m, m.GameModel.Init()

	case GameOverMsg:
		m.stop()
		m.CurrentScreen = GameOverScreen
		m.GameOverModel = NewGameOverModel(msg, m.ScreenWidth, m.ScreenHeight)
		m.GameModel = nil
		return m, nil

	case PlayAgainMsg:
		m.CurrentScreen = IntroScreen
		m.GameOverModel = nil
		return m, m.IntroModel.Init()

	default:
		// --- 3. Message Delegation (Pass to the active model for all other messages) ---
		switch m.CurrentScreen {
		case IntroScreen:
			m.IntroModel, cmd = m.IntroModel.Update(msg)
			cmds = append(cmds, cmd)
		case SetupScreen:
			m.SetupModel, cmd = m.SetupModel.Update(msg)
			cmds = append(cmds, cmd)
		case GameScreen:
			if m.GameModel != nil {
				m.GameModel, cmd = m.GameModel.Update(msg)
				cmds = append(cmds, cmd)
			}
		case GameOverScreen:
			if m.GameOverModel != nil {
				m.GameOverModel, cmd = m.GameOverModel.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// startGame builds a fresh round and runs it on its own goroutine. The hud is
// attached before the loop starts so the first leaderboard is not missed.
func (m *ControllerModel) startGame(name string) (GameViewModel, error) {
	cfg := m.Config
	if name != "" {
		cfg.PlayerName = name
	}

	gameManager, err := game.NewGameManager(cfg, m.Logger)
	if err != nil {
		return GameViewModel{}, err
	}

	hud := NewHud()
	gameManager.SetLeaderboardDisplay(hud)
	gameManager.SetBoostGauge(hud)
	gameManager.SetEliminationNotifier(hud)
	gameManager.StartRound()
	initial := gameManager.Snapshot()

	ctx, cancel := context.WithCancel(context.Background())
	m.stopGame = cancel
	go func() {
		gameManager.Run(ctx, game.GameTickDuration)
		gameManager.Close()
	}()

	return NewGameModel(gameManager.IntentChannel, gameManager.UpdateChannel, hud, initial, cfg.PlayerName, m.ScreenWidth, m.ScreenHeight), nil
}

func (m *ControllerModel) stop() {
	if m.stopGame != nil {
		m.stopGame()
		m.stopGame = nil
	}
}
