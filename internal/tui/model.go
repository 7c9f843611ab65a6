package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/docquery/internal/api"
	"github.com/csheth/docquery/internal/catalog"
	"github.com/csheth/docquery/internal/query"
	"github.com/csheth/docquery/internal/render"
)

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	composer := textinput.New()
	composer.Placeholder = composerPlaceholder
	composer.CharLimit = 400
	composer.Width = 70
	composer.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	if config.RequestTimeout <= 0 {
		config.RequestTimeout = defaultRequestTimeout
	}

	return &model{
		config:        config,
		composer:      composer,
		spinner:       spin,
		viewport:      vp,
		selected:      map[string]bool{},
		includeImages: true,
		maxResults:    query.DefaultMaxResults,
		focus:         focusComposer,
		viewportDirty: true,
		infoMessage:   "Loading document catalog…",
	}
}

type model struct {
	config Config

	composer textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	catalogLoading bool
	documents      []catalog.DocumentRef
	selected       map[string]bool
	docCursor      int

	includeImages bool
	maxResults    int

	controller   query.Controller
	display      *render.DisplayModel
	lastQuestion string

	focus          focusArea
	helpVisible    bool
	infoMessage    string
	errorMessage   string
	viewportDirty  bool
	sectionAnchors map[string]int
	lineCount      int
}

func (m *model) Init() tea.Cmd {
	// Warm start from whatever snapshot the cache already holds; the
	// refresh replaces it when the listing comes back.
	if snap := m.config.Catalog.Snapshot(); len(snap) > 0 {
		m.documents = snap
	}
	m.catalogLoading = true
	return tea.Batch(textinput.Blink, m.spinner.Tick, refreshCatalogCmd(m.config.Catalog))
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.catalogLoading || m.controller.Active() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			m.markViewportDirty()
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case catalogResultMsg:
		return m.handleCatalogResult(msg)
	case queryResultMsg:
		return m.handleQueryResult(msg)
	case tea.WindowSizeMsg:
		newWidth := msg.Width - viewportHorizontalPadding
		if newWidth < minViewportWidth {
			newWidth = minViewportWidth
		}
		m.viewport.Width = newWidth
		m.composer.Width = newWidth - 4
		height := msg.Height - 8
		if height < 5 {
			height = 5
		}
		m.viewport.Height = height
		m.markViewportDirty()
		return m, nil
	}
	return m, nil
}

func (m *model) handleCatalogResult(msg catalogResultMsg) (tea.Model, tea.Cmd) {
	m.catalogLoading = false
	if msg.err != nil {
		m.errorMessage = fmt.Sprintf("catalog error: %v", msg.err)
		m.infoMessage = "Press r in the document pane to retry."
		m.markViewportDirty()
		return m, nil
	}
	m.documents = msg.refs
	m.pruneSelection()
	if m.docCursor >= len(m.documents) {
		m.docCursor = 0
	}
	m.errorMessage = ""
	m.infoMessage = fmt.Sprintf("Catalog loaded: %d document(s). Empty selection searches everything.", len(m.documents))
	m.markViewportDirty()
	return m, nil
}

func (m *model) handleQueryResult(msg queryResultMsg) (tea.Model, tea.Cmd) {
	switch m.controller.Resolve(msg.seq, msg.result, msg.err) {
	case query.ResolutionStale:
		// A newer submission owns the screen; the late response is dropped.
		return m, nil
	}

	if failure := m.controller.Failure(); failure != nil {
		m.display = nil
		m.errorMessage = failure.Message
		m.infoMessage = failureHint(failure.Kind)
		m.markViewportDirty()
		return m, nil
	}

	result := m.controller.Result()
	display := render.Render(*result)
	m.display = &display
	m.errorMessage = ""
	m.infoMessage = fmt.Sprintf("Answered in %s.", display.ProcessingTime)
	m.markViewportDirty()
	return m, nil
}

func failureHint(kind api.Kind) string {
	switch kind {
	case api.KindValidation:
		return "Adjust the question and submit again."
	case api.KindNotFound:
		return "A selected document no longer exists. Refresh the catalog with r and adjust the selection."
	case api.KindServer:
		return "The backend failed. Submit again to retry."
	case api.KindNetwork:
		return "No response from the backend. Check the connection and submit again to retry."
	default:
		return "Submit again to retry."
	}
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyTab:
		m.toggleFocus()
		return m, nil
	case tea.KeyEsc:
		if m.helpVisible {
			m.helpVisible = false
			m.markViewportDirty()
			return m, nil
		}
		if m.focus == focusComposer && m.composer.Value() != "" {
			m.composer.SetValue("")
			m.infoMessage = "Cleared the composer."
			return m, nil
		}
		return m, tea.Quit
	}

	if m.focus == focusComposer {
		return m.handleComposerKey(key)
	}
	return m.handleDocumentsKey(key)
}

func (m *model) toggleFocus() {
	if m.focus == focusComposer {
		m.focus = focusDocuments
		m.composer.Blur()
		m.infoMessage = "Document pane: ↑/↓ move, space toggles, i images, +/- results, r refresh."
	} else {
		m.focus = focusComposer
		m.composer.Focus()
		m.infoMessage = "Composer: type a question and press Enter."
	}
	m.markViewportDirty()
}

func (m *model) handleComposerKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(key)
	if key.Type == tea.KeyEnter {
		if submitCmd := m.submitQuestion(); submitCmd != nil {
			return m, tea.Batch(cmd, submitCmd)
		}
	}
	return m, cmd
}

func (m *model) handleDocumentsKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		m.moveDocCursor(-1)
	case "down", "j":
		m.moveDocCursor(1)
	case " ":
		m.toggleSelectionAtCursor()
	case "c":
		m.selected = map[string]bool{}
		m.infoMessage = "Selection cleared; queries now search every document."
		m.markViewportDirty()
	case "i":
		m.includeImages = !m.includeImages
		if m.includeImages {
			m.infoMessage = "Image citations enabled."
		} else {
			m.infoMessage = "Image citations disabled."
		}
		m.markViewportDirty()
	case "+", "=":
		m.adjustMaxResults(1)
	case "-":
		m.adjustMaxResults(-1)
	case "r":
		if m.catalogLoading {
			m.infoMessage = "Catalog refresh already running."
			return m, nil
		}
		m.catalogLoading = true
		m.infoMessage = "Refreshing document catalog…"
		m.markViewportDirty()
		return m, tea.Batch(m.spinner.Tick, refreshCatalogCmd(m.config.Catalog))
	case "g":
		m.viewport.SetYOffset(0)
	case "G":
		m.viewport.SetYOffset(m.maxYOffset())
	case "]":
		m.jumpToRelativeSection(1)
	case "[":
		m.jumpToRelativeSection(-1)
	case "?":
		m.helpVisible = !m.helpVisible
		m.markViewportDirty()
	case "enter":
		if submitCmd := m.submitQuestion(); submitCmd != nil {
			return m, submitCmd
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(key)
		return m, cmd
	}
	return m, nil
}

// submitQuestion validates the composer contents and starts a submission.
// It returns nil when nothing was dispatched.
func (m *model) submitQuestion() tea.Cmd {
	request, err := query.Build(m.composer.Value(), m.selectedIDs(), m.includeImages, m.maxResults)
	if err != nil {
		if errors.Is(err, query.ErrEmptyQuestion) {
			m.errorMessage = "Type a question before submitting."
		} else {
			m.errorMessage = err.Error()
		}
		return nil
	}

	seq, ok := m.controller.Submit(request)
	if !ok {
		m.infoMessage = "A query is already in flight; wait for it to finish."
		return nil
	}

	m.lastQuestion = request.Query
	m.composer.SetValue("")
	m.errorMessage = ""
	m.infoMessage = "Submitting query…"
	m.markViewportDirty()
	return tea.Batch(m.spinner.Tick, submitQueryCmd(m.config.Service, request, seq, m.config.RequestTimeout))
}

func (m *model) selectedIDs() []string {
	ids := make([]string, 0, len(m.selected))
	for _, doc := range m.documents {
		if m.selected[doc.ID] {
			ids = append(ids, doc.ID)
		}
	}
	return ids
}

// pruneSelection drops selections pointing at documents the refreshed
// catalog no longer lists.
func (m *model) pruneSelection() {
	known := make(map[string]bool, len(m.documents))
	for _, doc := range m.documents {
		known[doc.ID] = true
	}
	for id := range m.selected {
		if !known[id] {
			delete(m.selected, id)
		}
	}
}

func (m *model) moveDocCursor(delta int) {
	if len(m.documents) == 0 {
		return
	}
	target := m.docCursor + delta
	if target < 0 {
		target = 0
	}
	if target >= len(m.documents) {
		target = len(m.documents) - 1
	}
	if target == m.docCursor {
		return
	}
	m.docCursor = target
	m.markViewportDirty()
}

func (m *model) toggleSelectionAtCursor() {
	if m.docCursor < 0 || m.docCursor >= len(m.documents) {
		m.infoMessage = "No document under the cursor."
		return
	}
	doc := m.documents[m.docCursor]
	if m.selected[doc.ID] {
		delete(m.selected, doc.ID)
	} else {
		m.selected[doc.ID] = true
	}
	if len(m.selected) == 0 {
		m.infoMessage = "Selection empty; queries search every document."
	} else {
		m.infoMessage = fmt.Sprintf("%d document(s) selected.", len(m.selected))
	}
	m.markViewportDirty()
}

func (m *model) adjustMaxResults(delta int) {
	next := m.maxResults + delta
	if next < query.MinResults {
		next = query.MinResults
	}
	if next > query.MaxResults {
		next = query.MaxResults
	}
	m.maxResults = next
	m.infoMessage = fmt.Sprintf("Max results: %d.", m.maxResults)
	m.markViewportDirty()
}

func (m *model) jumpToRelativeSection(delta int) {
	anchors := m.availableSections()
	if len(anchors) == 0 {
		return
	}
	current := m.viewport.YOffset
	if delta > 0 {
		for _, anchor := range anchors {
			if line := m.sectionAnchors[anchor]; line > current {
				m.viewport.SetYOffset(m.clampYOffset(line))
				return
			}
		}
		m.infoMessage = "Already at the last section."
		return
	}
	for i := len(anchors) - 1; i >= 0; i-- {
		if line := m.sectionAnchors[anchors[i]]; line < current {
			m.viewport.SetYOffset(m.clampYOffset(line))
			return
		}
	}
	m.infoMessage = "Already at the first section."
}

func (m *model) availableSections() []string {
	if len(m.sectionAnchors) == 0 {
		return nil
	}
	var ordered []string
	for _, anchor := range sectionSequence {
		if _, ok := m.sectionAnchors[anchor]; ok {
			ordered = append(ordered, anchor)
		}
	}
	return ordered
}

func (m *model) markViewportDirty() {
	m.viewportDirty = true
}

func (m *model) refreshViewportIfDirty() {
	if !m.viewportDirty {
		return
	}
	m.viewportDirty = false
	view := m.buildDisplayContent()
	m.sectionAnchors = view.anchors
	m.lineCount = strings.Count(view.content, "\n") + 1
	prev := m.viewport.YOffset
	m.viewport.SetContent(view.content)
	m.viewport.SetYOffset(m.clampYOffset(prev))
}

func (m *model) maxYOffset() int {
	max := m.lineCount - m.viewport.Height
	if max < 0 {
		return 0
	}
	return max
}

func (m *model) clampYOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	if max := m.maxYOffset(); offset > max {
		return max
	}
	return offset
}
