package ui

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shoplens/internal/logging"
	"github.com/five82/shoplens/internal/prefs"
	"github.com/five82/shoplens/internal/recommend"
	"github.com/five82/shoplens/internal/resulttree"
	"github.com/five82/shoplens/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    recommend.Service
	Store     *state.Store
	APIURL    string
	PollTick  time.Duration
	ThemeName string
	PrefsPath string

	// RequestTimeout bounds each user-initiated call; zero uses 30s.
	RequestTimeout time.Duration

	// Initial input values, usually restored from prefs.
	CSVPath  string
	Products string
	UserID   string
}

type focusKind int

const (
	focusNone focusKind = iota
	focusInput
	focusPanel
)

// focusRef identifies the focused form field or result panel.
type focusRef struct {
	kind  focusKind
	field inputField
	panel panelID
}

type statusLine struct {
	text  string
	isErr bool
	at    time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    recommend.Service
	store     *state.Store
	apiURL    string
	prefsPath string
	pollTick  time.Duration
	timeout   time.Duration

	// UI state
	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool
	focus  focusRef
	modal  Modal
	status statusLine

	inputs inputPanel
	panels [3]*resultPanel

	// Poller data
	snapshot    state.Snapshot
	forecastRaw *resulttree.Tree
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	m := Model{
		ctx:       ctx,
		timeout:   timeout,
		client:    opts.Client,
		store:     opts.Store,
		apiURL:    opts.APIURL,
		prefsPath: opts.PrefsPath,
		pollTick:  pollTick,
		theme:     GetTheme(opts.ThemeName),
		keys:      DefaultKeyMap(),
		inputs:    newInputPanel(opts.CSVPath, opts.Products, opts.UserID),
		focus:     focusRef{kind: focusInput, field: fieldCSV},
	}
	for i := range m.panels {
		m.panels[i] = newResultPanel(panelID(i))
	}
	m.inputs.focus(fieldCSV)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tickMsg:
		if m.status.text != "" && time.Since(m.status.at) > statusTTL {
			m.status = statusLine{}
		}
		cmds := []tea.Cmd{tickCmd(m.pollTick)}
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case uploadDoneMsg:
		return m.handleUploadDone(msg)

	case resultMsg:
		return m.handleResult(msg)

	case scrollFrameMsg:
		return m, m.panel(msg.panel).step(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	return b.String()
}

func (m Model) panel(id panelID) *resultPanel {
	return m.panels[id]
}

// visiblePanels returns populated panels in display order.
func (m Model) visiblePanels() []*resultPanel {
	var out []*resultPanel
	for _, p := range m.panels {
		if p.populated() {
			out = append(out, p)
		}
	}
	return out
}

// focusables lists focus targets in tab order: form fields, then panels.
func (m Model) focusables() []focusRef {
	refs := make([]focusRef, 0, int(fieldCount)+len(m.panels))
	for f := range fieldCount {
		refs = append(refs, focusRef{kind: focusInput, field: f})
	}
	for _, p := range m.visiblePanels() {
		refs = append(refs, focusRef{kind: focusPanel, panel: p.id})
	}
	return refs
}

func (m *Model) cycleFocus(delta int) {
	refs := m.focusables()
	idx := -1
	for i, r := range refs {
		if r == m.focus {
			idx = i
			break
		}
	}
	next := 0
	if idx >= 0 {
		next = ((idx+delta)%len(refs) + len(refs)) % len(refs)
	} else if delta < 0 {
		next = len(refs) - 1
	}
	m.setFocus(refs[next])
}

func (m *Model) setFocus(ref focusRef) {
	for _, p := range m.panels {
		if p.searching {
			p.searching = false
			p.search.Blur()
		}
	}
	m.focus = ref
	if ref.kind == focusInput {
		m.inputs.focus(ref.field)
	} else {
		m.inputs.blurAll()
	}
}

// handleKey routes keyboard input: modal first, then the focused widget,
// then global bindings.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		m.modal = modal
		if done {
			m.modal = nil
		}
		return m, cmd
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, m.keys.Tab):
		m.cycleFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.cycleFocus(-1)
		return m, nil
	}

	switch m.focus.kind {
	case focusInput:
		return m.handleInputKey(msg)
	case focusPanel:
		p := m.panel(m.focus.panel)
		if p.searching {
			return m.handleSearchKey(p, msg)
		}
		if handled, cmd := m.handlePanelKey(p, msg); handled {
			return m, cmd
		}
	}

	return m.handleGlobalKey(msg)
}

func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.modal = guideModal{}
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.restyle()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.RefreshForecast):
		m.setStatus("Refreshing forecast...", false)
		return m, m.fetchForecastCmd()
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m.submit(m.focus.field)
	case key.Matches(msg, m.keys.Escape):
		m.setFocus(focusRef{kind: focusNone})
		return m, nil
	}

	var cmd tea.Cmd
	f := m.focus.field
	m.inputs.fields[f], cmd = m.inputs.fields[f].Update(msg)
	return m, cmd
}

// handleSearchKey edits a panel's query. Highlights follow every keystroke;
// enter commits and moves to the first match.
func (m Model) handleSearchKey(p *resultPanel, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		p.searching = false
		p.search.Blur()
		p.setQuery(p.search.Value(), m.theme)
		return m, p.focusFirst(m.theme)

	case key.Matches(msg, m.keys.Escape):
		if p.search.Value() == "" {
			p.setQuery("", m.theme)
		}
		p.searching = false
		p.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	p.setQuery(p.search.Value(), m.theme)
	return m, cmd
}

// handlePanelKey handles keys for a focused, non-searching panel.
func (m Model) handlePanelKey(p *resultPanel, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		p.searching = true
		p.search.SetValue(p.query)
		p.search.CursorEnd()
		return true, p.search.Focus()

	case key.Matches(msg, m.keys.Confirm):
		return true, p.focusFirst(m.theme)

	case key.Matches(msg, m.keys.NextMatch):
		return true, p.cycleMatch(1, m.theme)

	case key.Matches(msg, m.keys.PrevMatch):
		return true, p.cycleMatch(-1, m.theme)

	case key.Matches(msg, m.keys.Escape):
		if p.query != "" {
			p.search.SetValue("")
			p.setQuery("", m.theme)
		}
		return true, nil

	case key.Matches(msg, m.keys.Down):
		p.stopAnimation()
		p.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		p.stopAnimation()
		p.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Top):
		p.stopAnimation()
		p.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		p.stopAnimation()
		p.viewport.GotoBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		p.stopAnimation()
		p.viewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		p.stopAnimation()
		p.viewport.HalfPageUp()
	case key.Matches(msg, m.keys.PageDown):
		p.stopAnimation()
		p.viewport.PageDown()
	case key.Matches(msg, m.keys.PageUp):
		p.stopAnimation()
		p.viewport.PageUp()
	default:
		return false, nil
	}
	return true, nil
}

// submit runs the action behind a form field.
func (m Model) submit(f inputField) (tea.Model, tea.Cmd) {
	if m.inputs.busy[f] {
		return m, nil
	}
	value := m.inputs.value(f)

	switch f {
	case fieldCSV:
		if err := recommend.ValidateCSVPath(value); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.inputs.busy[f] = true
		m.setStatus("Uploading "+truncateMiddle(value, maxStatusPath)+"...", false)
		return m, m.uploadCmd(value)

	case fieldProducts:
		products := recommend.ParseProducts(value)
		if len(products) == 0 {
			m.setStatus(recommend.ErrEmptyProducts.Error(), true)
			return m, nil
		}
		m.inputs.busy[f] = true
		return m, m.productsCmd(products)

	case fieldUser:
		if strings.TrimSpace(value) == "" {
			m.setStatus(recommend.ErrEmptyUserID.Error(), true)
			return m, nil
		}
		m.inputs.busy[f] = true
		return m, m.userCmd(value)
	}
	return m, nil
}

func (m Model) handleUploadDone(msg uploadDoneMsg) (tea.Model, tea.Cmd) {
	m.inputs.busy[fieldCSV] = false
	if msg.err != nil {
		logging.Warn().Err(msg.err).Msg("csv upload failed")
		m.setStatus("Failed to upload file: "+msg.err.Error(), true)
		return m, nil
	}
	text := "File uploaded successfully and analyzed!"
	if msg.result.Message != "" {
		text = msg.result.Message
	}
	logging.Info().Str("file", msg.result.File).Msg("csv uploaded")
	m.setStatus(text, false)
	m.savePrefs()
	// The service builds the forecast while processing the upload.
	return m, m.fetchForecastCmd()
}

func (m Model) handleResult(msg resultMsg) (tea.Model, tea.Cmd) {
	tree := msg.tree
	switch msg.panel {
	case panelProducts:
		m.inputs.busy[fieldProducts] = false
	case panelUser:
		m.inputs.busy[fieldUser] = false
	}

	p := m.panel(msg.panel)
	if msg.err != nil {
		logging.Warn().Err(msg.err).Str("panel", msg.panel.title()).Msg("fetch failed")
		text := failurePrefix(msg.panel) + ": " + msg.err.Error()
		if msg.panel == panelForecast && p.populated() {
			if _, isErr := p.tree.ErrorMessage(); !isErr {
				// Keep the forecast on screen.
				m.setStatus(text, true)
				return m, nil
			}
		}
		tree = resulttree.ErrorTree(text)
	} else if msg.panel == panelForecast {
		m.forecastRaw = tree
		tree = recommend.ForecastByDate(tree)
		m.setStatus("Forecast updated", false)
	}

	wasVisible := p.populated()
	p.setTree(tree, m.theme)
	if !wasVisible {
		m.layout()
	}
	if msg.panel != panelForecast && msg.err == nil {
		m.savePrefs()
	}
	return m, nil
}

func failurePrefix(id panelID) string {
	switch id {
	case panelProducts:
		return "Failed to fetch recommendations"
	case panelUser:
		return "Failed to fetch user recommendations"
	default:
		return "Failed to fetch sales forecast"
	}
}

// applySnapshot takes poller data; the forecast panel only changes when the
// polled forecast differs from what is shown.
func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if !snap.HasForecast || reflect.DeepEqual(snap.Forecast, m.forecastRaw) {
		return
	}
	m.forecastRaw = snap.Forecast
	p := m.panel(panelForecast)
	wasVisible := p.populated()
	p.setTree(recommend.ForecastByDate(snap.Forecast), m.theme)
	if !wasVisible {
		m.layout()
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = statusLine{text: text, isErr: isErr, at: time.Now()}
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{
		Theme:        m.theme.Name,
		LastCSV:      strings.TrimSpace(m.inputs.value(fieldCSV)),
		LastProducts: strings.TrimSpace(m.inputs.value(fieldProducts)),
		LastUserID:   strings.TrimSpace(m.inputs.value(fieldUser)),
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		logging.Warn().Err(err).Str("path", m.prefsPath).Msg("save prefs failed")
	}
}

// layout sizes every widget for the current terminal.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	bodyHeight := max(m.height-chromeRows, 0)
	left, right := columnWidths(m.width)
	m.inputs.setWidth(left - 2)

	visible := m.visiblePanels()
	for i, h := range stackHeights(bodyHeight, len(visible)) {
		visible[i].resize(right-2, max(h, minPanelHeight)-2, m.theme)
	}
}

// restyle re-renders panel content after a theme change.
func (m *Model) restyle() {
	for _, p := range m.panels {
		if p.populated() {
			p.rebuild(m.theme)
		}
	}
}

func (m Model) renderBody() string {
	bodyHeight := max(m.height-chromeRows, 0)
	left, right := columnWidths(m.width)

	focusedField := inputField(-1)
	if m.focus.kind == focusInput {
		focusedField = m.focus.field
	}
	form := m.renderBox("Input Panel", m.inputs.view(m.theme, left-2, focusedField), left, bodyHeight, m.focus.kind == focusInput)

	visible := m.visiblePanels()
	if len(visible) == 0 {
		hint := NewBgStyle(m.theme.Surface).Render("Upload a CSV, then ask for recommendations. Press ? for the guide.", m.theme.Styles().FaintText)
		results := m.renderBox("Results", hint, right, bodyHeight, false)
		return lipgloss.JoinHorizontal(lipgloss.Top, form, results)
	}

	heights := stackHeights(bodyHeight, len(visible))
	boxes := make([]string, len(visible))
	for i, p := range visible {
		focused := m.focus.kind == focusPanel && m.focus.panel == p.id
		title := p.id.title()
		if s := p.matchStatus(); s != "" {
			title += " [" + s + "]"
		}
		boxes[i] = m.renderBox(title, p.view(m.theme, focused), right, max(heights[i], minPanelHeight), focused)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, form, lipgloss.JoinVertical(lipgloss.Left, boxes...))
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type uploadDoneMsg struct {
	result recommend.UploadResult
	err    error
}

type resultMsg struct {
	panel panelID
	tree  *resulttree.Tree
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func (m Model) uploadCmd(path string) tea.Cmd {
	client, parent, timeout := m.client, m.ctx, m.timeout
	return func() tea.Msg {
		if client == nil {
			return uploadDoneMsg{err: errNoClient}
		}
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		res, err := client.UploadCSV(ctx, path)
		return uploadDoneMsg{result: res, err: err}
	}
}

func (m Model) productsCmd(products []string) tea.Cmd {
	return m.fetchCmd(panelProducts, func(ctx context.Context, c recommend.Service) (*resulttree.Tree, error) {
		return c.RecommendProducts(ctx, products)
	})
}

func (m Model) userCmd(userID string) tea.Cmd {
	return m.fetchCmd(panelUser, func(ctx context.Context, c recommend.Service) (*resulttree.Tree, error) {
		return c.RecommendUser(ctx, userID)
	})
}

func (m Model) fetchForecastCmd() tea.Cmd {
	return m.fetchCmd(panelForecast, func(ctx context.Context, c recommend.Service) (*resulttree.Tree, error) {
		return c.FetchForecast(ctx)
	})
}

func (m Model) fetchCmd(id panelID, call func(context.Context, recommend.Service) (*resulttree.Tree, error)) tea.Cmd {
	client, parent, timeout := m.client, m.ctx, m.timeout
	return func() tea.Msg {
		if client == nil {
			return resultMsg{panel: id, err: errNoClient}
		}
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		tree, err := call(ctx, client)
		return resultMsg{panel: id, tree: tree, err: err}
	}
}

var errNoClient = errors.New("no service client configured")

// Run starts the Bubble Tea program and blocks until it exits or the
// context is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
