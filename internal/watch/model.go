package watch

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pipebots/pipelink/internal/monitor"
)

// nodeState is the latest view of one node, keyed by its hex id.
type nodeState struct {
	lastSeen time.Time
	event    monitor.Event
}

// Messages delivered by the stream reader
type eventMsg monitor.Event

type streamErrMsg struct{ err error }

// keyMap defines key bindings for the watch screen
type keyMap struct {
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the bubbletea model for the live node table.
type Model struct {
	gateway string
	client  *Client

	nodes map[string]nodeState
	table table.Model
	keys  keyMap

	streamErr error
	width     int
}

// NewModel builds the watch screen for one gateway subscription.
func NewModel(gateway string, client *Client) Model {
	columns := []table.Column{
		{Title: "NODE", Width: 6},
		{Title: "LAST SEEN", Width: 10},
		{Title: "CNT", Width: 10},
		{Title: "LOST", Width: 6},
		{Title: "WLAN RSSI", Width: 10},
		{Title: "CH", Width: 4},
		{Title: "BSSID", Width: 18},
		{Title: "LORA RSSI", Width: 10},
		{Title: "SNR", Width: 5},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(accentColor)
	s.Selected = s.Selected.Foreground(accentColor).Bold(true)
	t.SetStyles(s)

	return Model{
		gateway: gateway,
		client:  client,
		nodes:   make(map[string]nodeState),
		table:   t,
		keys:    defaultKeyMap(),
	}
}

// Init starts the stream reader.
func (m Model) Init() tea.Cmd {
	return m.nextEvent()
}

// nextEvent waits for one event from the gateway.
func (m Model) nextEvent() tea.Cmd {
	return func() tea.Msg {
		ev, err := m.client.Next()
		if err != nil {
			return streamErrMsg{err}
		}
		return eventMsg(ev)
	}
}

// Update handles stream events and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetHeight(msg.Height - 5)

	case eventMsg:
		m.apply(monitor.Event(msg))
		return m, m.nextEvent()

	case streamErrMsg:
		m.streamErr = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// apply folds one event into the per-node table.
func (m *Model) apply(ev monitor.Event) {
	m.nodes[ev.NodeID] = nodeState{lastSeen: ev.RxTime, event: ev}

	ids := make([]string, 0, len(m.nodes))
	for id := range m.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([]table.Row, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, nodeRow(m.nodes[id]))
	}
	m.table.SetRows(rows)
}

func nodeRow(st nodeState) table.Row {
	ev := st.event

	wlanRSSI, channel, bssid := "NA", "NA", "NA"
	if ev.WLAN != nil {
		wlanRSSI = fmt.Sprintf("%d dBm", ev.WLAN.RSSI)
		channel = fmt.Sprintf("%d", ev.WLAN.Channel)
		bssid = ev.WLAN.BSSID
	}

	return table.Row{
		ev.NodeID,
		st.lastSeen.Local().Format("15:04:05"),
		fmt.Sprintf("%d", ev.MsgCnt),
		fmt.Sprintf("%d", ev.Lost),
		wlanRSSI,
		channel,
		bssid,
		fmt.Sprintf("%d dBm", ev.LoraRSSI),
		fmt.Sprintf("%d dB", ev.LoraSNR),
	}
}

// View renders the node table with a title and status line.
func (m Model) View() string {
	view := titleStyle.Render("pipelink watch - "+m.gateway) + "\n"
	view += tableStyle.Render(m.table.View()) + "\n"

	if m.streamErr != nil {
		view += errorStyle.Render("stream closed: "+m.streamErr.Error()) + "\n"
	}
	view += statusStyle.Render(fmt.Sprintf("%d node(s) - q to quit", len(m.nodes)))

	return view
}
