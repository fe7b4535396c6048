package tui

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/skyreg/internal/discovery"
)

// Messages for async operations
type scanStartMsg struct{}
type scanCompleteMsg struct {
	instances []*discovery.Instance
	err       error
}

// browserKeyMap defines key bindings for the server list
type browserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Rescan key.Binding
	Manual key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k browserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Rescan, k.Manual, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k browserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter},
		{k.Rescan, k.Manual, k.Quit},
	}
}

// manualModeKeyMap defines key bindings for manual address entry
type manualModeKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (m manualModeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{m.Confirm, m.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (m manualModeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.Confirm, m.Cancel},
	}
}

// instanceItem wraps an Instance for use with bubbles/list
type instanceItem struct {
	instance *discovery.Instance
}

// FilterValue implements list.Item
func (i instanceItem) FilterValue() string {
	return i.instance.Name + " " + i.instance.IP + " " + i.instance.Host
}

// instanceDelegate renders session servers as cards
type instanceDelegate struct {
	width int
}

func (d instanceDelegate) Height() int { return 6 }

func (d instanceDelegate) Spacing() int { return 1 }

func (d instanceDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d instanceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(instanceItem)
	if !ok {
		return
	}

	inst := it.instance
	selected := index == m.Index()

	var content strings.Builder
	if selected {
		content.WriteString(SelectedMenuItemStyle.Render("→ " + inst.Name))
	} else {
		content.WriteString("  " + inst.Name)
	}
	content.WriteString("\n")

	ver := inst.Version()
	if ver == "" {
		ver = "unknown"
	}
	content.WriteString(fmt.Sprintf("  Address: %s\n", net.JoinHostPort(inst.IP, strconv.Itoa(inst.Port))))
	content.WriteString(fmt.Sprintf("  Session: %s\n", inst.SessionURL()))
	content.WriteString(fmt.Sprintf("  Version: %s", ver))

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 2).
		MarginLeft(2).
		Width(CalculateCardWidth(d.width))
	if selected {
		cardStyle = cardStyle.BorderForeground(HighlightColor)
	}

	fmt.Fprint(w, cardStyle.Render(content.String()))
}

// BrowserModel lists skyreg session servers found over mDNS and lets the
// user pick one, or type an address by hand.
type BrowserModel struct {
	// Discovery state
	Scanner      *discovery.Scanner
	Scanning     bool
	InstanceList list.Model
	Selected     *discovery.Instance
	Err          error

	// Manual address entry state
	ManualMode   bool
	AddressInput textinput.Model

	// UI state
	Width         int
	Height        int
	Spinner       spinner.Model
	ProgressBar   progress.Model
	ScanStartTime time.Time
	Help          help.Model
	Keys          browserKeyMap
	ManualKeys    manualModeKeyMap
}

// NewBrowserModel creates a browser that scans with the given timeout
func NewBrowserModel(timeout time.Duration) BrowserModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	addressInput := textinput.New()
	addressInput.Placeholder = "192.168.1.20:8080"
	addressInput.CharLimit = 64
	addressInput.Width = 30

	progressBar := progress.New(progress.WithDefaultGradient())
	progressBar.Width = 40

	instanceList := list.New([]list.Item{}, instanceDelegate{width: MinTerminalWidth}, 0, 0)
	instanceList.Title = "Session Servers"
	instanceList.SetShowStatusBar(false)
	instanceList.SetFilteringEnabled(true)
	instanceList.Styles.Title = TitleStyle

	scanner := discovery.NewScanner()
	if timeout > 0 {
		scanner.Timeout = timeout
	}

	return BrowserModel{
		Scanner:      scanner,
		InstanceList: instanceList,
		AddressInput: addressInput,
		Spinner:      s,
		ProgressBar:  progressBar,
		Help:         help.New(),
		Keys: browserKeyMap{
			Up: key.NewBinding(
				key.WithKeys("up", "k"),
				key.WithHelp("↑/k", "move up"),
			),
			Down: key.NewBinding(
				key.WithKeys("down", "j"),
				key.WithHelp("↓/j", "move down"),
			),
			Enter: key.NewBinding(
				key.WithKeys("enter", " "),
				key.WithHelp("enter", "select"),
			),
			Rescan: key.NewBinding(
				key.WithKeys("r"),
				key.WithHelp("r", "rescan"),
			),
			Manual: key.NewBinding(
				key.WithKeys("m"),
				key.WithHelp("m", "enter address"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q", "esc"),
				key.WithHelp("q", "quit"),
			),
		},
		ManualKeys: manualModeKeyMap{
			Confirm: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "confirm"),
			),
			Cancel: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", "cancel"),
			),
		},
	}
}

// Init starts the first scan
func (m BrowserModel) Init() tea.Cmd {
	return m.startScan()
}

func (m BrowserModel) startScan() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return scanStartMsg{} },
		scanInstances(m.Scanner),
		m.Spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.ManualMode {
			return m.updateManualMode(msg)
		}
		if m.Scanning {
			if key.Matches(msg, m.Keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}
		return m.updateNormalMode(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.InstanceList.SetDelegate(instanceDelegate{width: msg.Width})
		m.InstanceList.SetWidth(msg.Width - 4)
		m.InstanceList.SetHeight(msg.Height - 10) // Leave room for header/footer
		return m, nil

	case scanStartMsg:
		m.Scanning = true
		m.ScanStartTime = time.Now()
		return m, nil

	case scanCompleteMsg:
		m.Scanning = false
		m.Err = msg.err
		items := make([]list.Item, len(msg.instances))
		for i, inst := range msg.instances {
			items[i] = instanceItem{instance: inst}
		}
		m.InstanceList.SetItems(items)
		return m, nil

	case spinner.TickMsg:
		if !m.Scanning {
			return m, nil
		}
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// updateNormalMode handles keyboard input in the server list
func (m BrowserModel) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Let the list own the keyboard while filtering
	if m.InstanceList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.InstanceList, cmd = m.InstanceList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Enter):
		if item, ok := m.InstanceList.SelectedItem().(instanceItem); ok {
			m.Selected = item.instance
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.Keys.Rescan):
		m.InstanceList.SetItems([]list.Item{})
		m.Err = nil
		return m, m.startScan()

	case key.Matches(msg, m.Keys.Manual):
		m.ManualMode = true
		m.AddressInput.SetValue("")
		m.AddressInput.Focus()
		return m, textinput.Blink
	}

	// Let the list handle up/down navigation and filtering
	var cmd tea.Cmd
	m.InstanceList, cmd = m.InstanceList.Update(msg)
	return m, cmd
}

// updateManualMode handles keyboard input in manual address entry mode
func (m BrowserModel) updateManualMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.ManualKeys.Cancel):
		m.ManualMode = false
		m.AddressInput.SetValue("")
		m.AddressInput.Blur()
		return m, nil

	case key.Matches(msg, m.ManualKeys.Confirm):
		inst, err := ParseManualAddress(m.AddressInput.Value())
		if err != nil {
			m.Err = err
			return m, nil
		}
		m.Err = nil
		items := append([]list.Item{instanceItem{instance: inst}}, m.InstanceList.Items()...)
		m.InstanceList.SetItems(items)
		m.InstanceList.Select(0)
		m.ManualMode = false
		m.AddressInput.SetValue("")
		m.AddressInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.AddressInput, cmd = m.AddressInput.Update(msg)
	return m, cmd
}

// ParseManualAddress turns "host:port" (or a bare host, which gets the
// default server port) into an Instance
func ParseManualAddress(addr string) (*discovery.Instance, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("enter an address such as 192.168.1.20:8080")
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		host, portStr = addr, "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port %q", portStr)
	}

	return &discovery.Instance{
		Name:         "Manual: " + net.JoinHostPort(host, portStr),
		Host:         host,
		IP:           host,
		Port:         port,
		Metadata:     map[string]string{},
		DiscoveredAt: time.Now(),
	}, nil
}

// View renders the browser
func (m BrowserModel) View() string {
	width := m.Width
	if width == 0 {
		width = MinTerminalWidth
	}

	var content, helpText string
	switch {
	case m.ManualMode:
		content = m.renderManualEntry()
		helpText = m.Help.View(m.ManualKeys)
	case m.Scanning:
		content = m.renderScanning(width)
		helpText = m.Help.View(m.Keys)
	default:
		content = m.renderResults()
		helpText = m.Help.View(m.Keys)
	}

	return RenderApplicationContainer(content, helpText, m.Width, m.Height)
}

// renderScanning renders a centered scanning progress display
func (m BrowserModel) renderScanning(width int) string {
	elapsed := time.Since(m.ScanStartTime)
	fraction := elapsed.Seconds() / m.Scanner.Timeout.Seconds()
	if fraction > 1 {
		fraction = 1
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		TitleStyle.Render(fmt.Sprintf("%s SEARCHING FOR SESSION SERVERS", m.Spinner.View())),
		SubtitleStyle.Render("Browsing "+discovery.ServiceType+" on the local network..."),
		"",
		m.ProgressBar.ViewAs(fraction),
		"",
		SubtitleStyle.Render(fmt.Sprintf("Elapsed: %ds", int(elapsed.Seconds()))),
		"",
	)

	return lipgloss.Place(width-4, 0, lipgloss.Center, lipgloss.Top, content)
}

// renderResults renders the server list or a "none found" message
func (m BrowserModel) renderResults() string {
	var b strings.Builder
	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString(RenderError(m.Err.Error()))
		b.WriteString("\n\n")
	}

	if len(m.InstanceList.Items()) == 0 {
		b.WriteString(WarningBoxStyle.Render("⚠ No session servers found on your network"))
		b.WriteString("\n\n")
		b.WriteString("  Troubleshooting:\n")
		b.WriteString("    • Start one with: skyreg-server server --advertise\n")
		b.WriteString("    • mDNS does not cross subnets or most VPNs\n")
		b.WriteString("    • Press 'm' to enter an address by hand\n")
		return b.String()
	}

	b.WriteString(m.InstanceList.View())
	return b.String()
}

// renderManualEntry renders the manual address entry dialog
func (m BrowserModel) renderManualEntry() string {
	var b strings.Builder

	b.WriteString(RenderSubtitle("Enter session server address"))
	b.WriteString("\n\n")
	b.WriteString("  Address: ")
	b.WriteString(m.AddressInput.View())
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(FieldErrorStyle.Render("  " + m.Err.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

// scanInstances is a command that browses for session servers
func scanInstances(scanner *discovery.Scanner) tea.Cmd {
	return func() tea.Msg {
		instances, err := scanner.Scan(context.Background())
		return scanCompleteMsg{instances: instances, err: err}
	}
}

// Browse runs the browser and returns the chosen server, or nil if the user
// quit without choosing
func Browse(timeout time.Duration) (*discovery.Instance, error) {
	p := tea.NewProgram(NewBrowserModel(timeout), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	return final.(BrowserModel).Selected, nil
}
