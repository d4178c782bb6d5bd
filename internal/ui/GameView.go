package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/Mshel/gobble/internal/game"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	voidColor    = "233"
	playerColor  = "205"
	botColors    = []string{"39", "76", "214", "141", "203", "44", "220", "99"}
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	wallStyle = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("172")).Render("▒")
	voidStyle = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Render(" ")
	foodStyle = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("118")).Render("•")

	headRunes = map[game.Direction]rune{
		game.Up:    '▲',
		game.Down:  '▼',
		game.Left:  '◀',
		game.Right: '▶',
	}
)

const (
	mapViewPercentage  = 0.70
	statusPanelPadding = 4
	leaderboardSize    = 10
)

type GameViewModel struct {
	Snapshot     game.Snapshot
	PlayerName   string
	ScreenWidth  int
	ScreenHeight int

	intents chan<- game.Intent
	updates <-chan tea.Msg
	hud     *Hud
	boost   progress.Model
}

func NewGameModel(intents chan<- game.Intent, updates <-chan tea.Msg, hud *Hud, initial game.Snapshot, playerName string, screenWidth int, screenHeight int) GameViewModel {
	return GameViewModel{
		Snapshot:     initial,
		PlayerName:   playerName,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		intents:      intents,
		updates:      updates,
		hud:          hud,
		boost:        progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (m GameViewModel) Init() tea.Cmd {
	return m.listenForGameUpdates()
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		var intent game.Intent
		switch msg.String() {
		case "w", "up":
			intent = game.Intent{Y: 1}
		case "s", "down":
			intent = game.Intent{Y: -1}
		case "a", "left":
			intent = game.Intent{X: -1}
		case "d", "right":
			intent = game.Intent{X: 1}
		case " ":
			intent = game.Intent{Boost: true}
		default:
			return m, nil
		}

		// Prevent moving backwards
		if current, ok := m.player(); ok && !intent.Boost {
			reverse := current.Direction.Opposite()
			if dir, ok := game.DirectionFromIntent(intent.X, intent.Y); ok && dir == reverse {
				return m, nil
			}
		}

		select {
		case m.intents <- intent:
		default:
		}
		return m, nil

	case game.GameTickMsg:
		m.Snapshot = msg.Snapshot
		return m, m.listenForGameUpdates()

	case game.RoundOverMsg:
		result := GameOverMsg{
			Result:      msg.Result,
			Leaderboard: m.hud.Leaderboard(),
			PlayerName:  m.PlayerName,
		}
		return m, func() tea.Msg { return result }
	}

	return m, nil
}

func (m GameViewModel) View() string {
	if m.ScreenWidth == 0 || m.ScreenHeight == 0 {
		return "Waiting for terminal size..."
	}

	mapWidth := int(float64(m.ScreenWidth) * mapViewPercentage)
	statusPanelWidth := m.ScreenWidth - mapWidth - statusPanelPadding

	mapContent := m.renderMap(mapWidth-2, m.ScreenHeight-2)
	statusContent := m.renderStatusPanel(statusPanelWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		mapViewStyle.Width(mapWidth).Height(m.ScreenHeight-2).Render(mapContent),
		statusPanelStyle.Width(statusPanelWidth).Height(m.ScreenHeight-2).Render(statusContent),
	)
}

// grid maps world coordinates onto terminal cells. Row 0 is the top of the
// arena, so y is flipped.
type grid struct {
	min, max   mgl64.Vec2
	cols, rows int
}

func (g grid) col(x float64) int {
	c := int(math.Floor((x - g.min.X()) / (g.max.X() - g.min.X()) * float64(g.cols)))
	return min(max(c, 0), g.cols-1)
}

func (g grid) row(y float64) int {
	r := int(math.Floor((g.max.Y() - y) / (g.max.Y() - g.min.Y()) * float64(g.rows)))
	return min(max(r, 0), g.rows-1)
}

func (m GameViewModel) renderMap(width int, height int) string {
	s := m.Snapshot
	if width < 1 || height < 1 || s.ArenaMax.X() <= s.ArenaMin.X() || s.ArenaMax.Y() <= s.ArenaMin.Y() {
		return ""
	}
	g := grid{min: s.ArenaMin, max: s.ArenaMax, cols: width, rows: height}

	cells := make([][]string, height)
	for r := range cells {
		cells[r] = make([]string, width)
		for c := range cells[r] {
			cells[r][c] = voidStyle
		}
	}

	for _, o := range s.Obstacles {
		for r := g.row(o.Max.Y()); r <= g.row(o.Min.Y()); r++ {
			for c := g.col(o.Min.X()); c <= g.col(o.Max.X()); c++ {
				cells[r][c] = wallStyle
			}
		}
	}

	for _, f := range s.Food {
		cells[g.row(f.Position.Y())][g.col(f.Position.X())] = foodStyle
	}

	for _, e := range s.Entities {
		colorStyle := lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color(entityColor(e, s.PlayerID)))
		body := colorStyle.Render("█")
		lo, hi := e.Position.Sub(e.Extents), e.Position.Add(e.Extents)
		for r := g.row(hi.Y()); r <= g.row(lo.Y()); r++ {
			for c := g.col(lo.X()); c <= g.col(hi.X()); c++ {
				cells[r][c] = body
			}
		}
		head := colorStyle.Bold(true).Reverse(true).Render(string(headRunes[e.Direction]))
		cells[g.row(e.Position.Y())][g.col(e.Position.X())] = head
	}

	var sb strings.Builder
	for r := range cells {
		sb.WriteString(strings.Join(cells[r], ""))
		if r < len(cells)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderStatusPanel draws the stats, the boost gauge and the leaderboard.
func (m GameViewModel) renderStatusPanel(width int) string {
	var statusContent strings.Builder
	leaderboard := m.hud.Leaderboard()

	statusContent.WriteString(lipgloss.NewStyle().Bold(true).Render("--- Player Stats ---") + "\n")
	colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(playerColor))
	statusContent.WriteString(fmt.Sprintf("%s%s\n", colorStyle.Render("● "), m.PlayerName))

	if player, ok := m.player(); ok {
		statusContent.WriteString(fmt.Sprintf("Size: %d\n", player.Size))
		statusContent.WriteString(fmt.Sprintf("Direction: %c\n", headRunes[player.Direction]))
	}
	for _, entry := range leaderboard {
		if entry.EntityID == m.Snapshot.PlayerID {
			statusContent.WriteString(fmt.Sprintf("Rank: %d / %d\n", entry.Rank, len(leaderboard)))
			break
		}
	}
	statusContent.WriteString(fmt.Sprintf("Time left: %s\n", formatSeconds(m.Snapshot.Remaining)))

	m.boost.Width = max(width-2, 10)
	statusContent.WriteString("\nBoost\n" + m.boost.ViewAs(m.hud.Boost()) + "\n")

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("--- Leaderboard(TOP %d) ---", leaderboardSize)) + "\n")
	for i, entry := range leaderboard {
		if i == leaderboardSize {
			break
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(rankColor(entry, m.Snapshot.PlayerID)))
		statusContent.WriteString(fmt.Sprintf("%d. %s%s %s: %d\n", entry.Rank, style.Render("● "), entry.Kind, entry.Name, entry.Size))
	}

	if feed := m.hud.Feed(); len(feed) > 0 {
		statusContent.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render(strings.Join(feed, "\n")) + "\n")
	}

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Controls ---") + "\n")
	statusContent.WriteString("WASD / Arrows: Move\n")
	statusContent.WriteString("Space: Boost\n")
	statusContent.WriteString("Q / Ctrl+C: Quit Game\n")

	return statusContent.String()
}

func (m GameViewModel) player() (game.EntityView, bool) {
	for _, e := range m.Snapshot.Entities {
		if e.ID == m.Snapshot.PlayerID {
			return e, true
		}
	}
	return game.EntityView{}, false
}

func (m GameViewModel) listenForGameUpdates() tea.Cmd {
	updates := m.updates
	return func() tea.Msg {
		msg, ok := <-updates
		if !ok {
			return nil
		}
		return msg
	}
}

func entityColor(e game.EntityView, playerID int) string {
	if e.ID == playerID {
		return playerColor
	}
	return botColors[e.ID%len(botColors)]
}

func rankColor(entry game.RankEntry, playerID int) string {
	if entry.EntityID == playerID {
		return playerColor
	}
	return botColors[entry.EntityID%len(botColors)]
}

func formatSeconds(seconds float64) string {
	total := int(math.Ceil(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
