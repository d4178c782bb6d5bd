package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/gobble/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// GameOverModel shows the final standing and the last leaderboard.
type GameOverModel struct {
	Result         game.RoundResult
	Leaderboard    []game.RankEntry
	PlayerName     string
	SelectedButton int // 0: Play again, 1: Exit
	ScreenWidth    int
	ScreenHeight   int
}

// Styles for Game Over/Leaderboard
var (
	GameOverbuttonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = GameOverbuttonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15")) // White/Bright text

	leaderboardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	leaderboardRowStyle = lipgloss.NewStyle().
				Padding(0, 1)

	leaderboardBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))
)

func NewGameOverModel(msg GameOverMsg, w, h int) GameOverModel {
	return GameOverModel{
		Result:       msg.Result,
		Leaderboard:  msg.Leaderboard,
		PlayerName:   msg.PlayerName,
		ScreenWidth:  w,
		ScreenHeight: h,
	}
}

func (g GameOverModel) Init() tea.Cmd { return nil }

func (g GameOverModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		g.ScreenWidth = msg.Width
		g.ScreenHeight = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			g.SelectedButton = max(0, g.SelectedButton-1)
		case "right", "l":
			g.SelectedButton = min(1, g.SelectedButton+1)
		case "enter":
			if g.SelectedButton == 0 {
				return g, func() tea.Msg { return PlayAgainMsg{} }
			}
			return g, tea.Quit
		}
	}
	return g, nil
}

// View draws the end reason, the final stats and the standings.
func (g GameOverModel) View() string {
	messageStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("9")).
		Padding(1, 5).
		Align(lipgloss.Center)

	title := messageStyle.Render(strings.ToUpper(g.Result.Reason.String()))

	var stats strings.Builder
	stats.WriteString("\nFinal Stats:\n")
	stats.WriteString(fmt.Sprintf("Survived: %s\n", formatSeconds(g.Result.Survived)))
	stats.WriteString(fmt.Sprintf("Final size: %d\n", g.Result.Size))
	if g.Result.Rank > 0 {
		stats.WriteString(fmt.Sprintf("Final rank: #%d\n", g.Result.Rank))
	}
	if g.Result.EatenBy != "" {
		stats.WriteString(fmt.Sprintf("Eaten by: %s\n", g.Result.EatenBy))
	}

	playButton := GameOverbuttonStyle.Render("PLAY AGAIN")
	exitButton := GameOverbuttonStyle.Render("EXIT")
	if g.SelectedButton == 0 {
		playButton = selectedButtonStyle.Render("PLAY AGAIN")
	} else {
		exitButton = selectedButtonStyle.Render("EXIT")
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, playButton, exitButton)

	content := lipgloss.JoinVertical(lipgloss.Center, title, stats.String(), g.renderLeaderboard(), buttons)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 2).Render(content),
	)
}

func (g GameOverModel) renderLeaderboard() string {
	var tableContent strings.Builder

	// Define column widths for alignment
	nameWidth := 22
	sizeWidth := 6

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		leaderboardHeaderStyle.Width(4).Render("#"),
		leaderboardHeaderStyle.Width(nameWidth).Render("Blob"),
		leaderboardHeaderStyle.Width(sizeWidth).Render("Size"),
	)
	tableContent.WriteString(header + "\n")

	for i, entry := range g.Leaderboard {
		if i == leaderboardSize {
			break
		}
		nameStyle := leaderboardRowStyle
		if entry.Kind == game.Controlled {
			nameStyle = nameStyle.Foreground(lipgloss.Color(playerColor))
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			leaderboardRowStyle.Width(4).Render(strconv.Itoa(entry.Rank)),
			nameStyle.Width(nameWidth).Render(entry.Kind.String()+" "+entry.Name),
			leaderboardRowStyle.Width(sizeWidth).Render(strconv.Itoa(entry.Size)),
		)
		tableContent.WriteString(leaderboardBorderStyle.Render(row) + "\n")
	}

	return tableContent.String()
}
