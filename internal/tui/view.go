package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/docquery/internal/query"
	"github.com/csheth/docquery/internal/render"
)

// contentBuilder accumulates viewport content while tracking line numbers
// so sections can be jumped to by anchor.
type contentBuilder struct {
	sb      strings.Builder
	line    int
	anchors map[string]int
}

func newContentBuilder() *contentBuilder {
	return &contentBuilder{anchors: map[string]int{}}
}

func (b *contentBuilder) anchor(name string) {
	b.anchors[name] = b.line
}

func (b *contentBuilder) writeLine(text string) {
	b.sb.WriteString(text)
	b.sb.WriteString("\n")
	b.line += strings.Count(text, "\n") + 1
}

func (b *contentBuilder) blank() {
	b.writeLine("")
}

type displayContent struct {
	content string
	anchors map[string]int
}

func (m *model) View() string {
	m.refreshViewportIfDirty()

	var sections []string
	sections = append(sections, m.headerView())
	sections = append(sections, m.viewport.View())
	sections = append(sections, m.statusBarView())
	if m.helpVisible {
		sections = append(sections, m.legendView())
	}
	return strings.Join(sections, "\n")
}

func (m *model) headerView() string {
	logo := logoContainerStyle.Render(logoFaceStyle.Render(" DQ "))
	title := heroTitleStyle.Render("DocQuery")
	tagline := taglineStyle.Render(heroTagline)
	header := lipgloss.JoinHorizontal(lipgloss.Center, logo, " ", title, "  ", tagline)

	composerLabel := helperStyle.Render("Question")
	if m.focus == focusComposer {
		composerLabel = sectionHeaderStyle.Render("Question")
	}
	return header + "\n" + composerLabel + "\n" + m.composer.View()
}

func (m *model) statusBarView() string {
	var parts []string
	if m.errorMessage != "" {
		parts = append(parts, errorStyle.Render(m.errorMessage))
	}
	if m.infoMessage != "" {
		parts = append(parts, m.infoMessage)
	}
	parts = append(parts, fmt.Sprintf("images %s", onOff(m.includeImages)))
	parts = append(parts, fmt.Sprintf("results %d", m.maxResults))
	parts = append(parts, "? help")
	return statusBarStyle.Render(strings.Join(parts, "  ·  "))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (m *model) legendView() string {
	rows := []struct{ key, desc string }{
		{"tab", "switch composer / documents"},
		{"enter", "submit question"},
		{"space", "toggle document under cursor"},
		{"c", "clear selection (search everything)"},
		{"i", "toggle image citations"},
		{"+/-", "adjust max results"},
		{"r", "refresh catalog"},
		{"[ ]", "previous / next section"},
		{"g G", "top / bottom"},
		{"esc", "clear composer, then quit"},
		{"ctrl+c", "quit"},
	}
	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(keyStyle.Render(row.key))
		sb.WriteString(" ")
		sb.WriteString(keyDescStyle.Render(row.desc))
		sb.WriteString("\n")
	}
	return legendBoxStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

func (m *model) buildDisplayContent() displayContent {
	b := newContentBuilder()
	width := m.wrapWidth()

	m.writeDocumentsSection(b, width)
	b.blank()
	m.writeAnswerSection(b, width)

	return displayContent{content: strings.TrimRight(b.sb.String(), "\n"), anchors: b.anchors}
}

func (m *model) writeDocumentsSection(b *contentBuilder, width int) {
	b.anchor(anchorDocuments)
	label := "Documents"
	if m.focus == focusDocuments {
		b.writeLine(sectionHeaderStyle.Render(label))
	} else {
		b.writeLine(helperStyle.Render(label))
	}

	if m.catalogLoading {
		b.writeLine(fmt.Sprintf("%s loading catalog…", m.spinner.View()))
		return
	}
	if len(m.documents) == 0 {
		b.writeLine(helperStyle.Render("No documents indexed yet."))
		return
	}

	for i, doc := range m.documents {
		marker := "[ ]"
		if m.selected[doc.ID] {
			marker = "[x]"
		}
		name := doc.DisplayName
		if doc.MetadataMissing {
			name = placeholderDocStyle.Render(name)
		}
		line := fmt.Sprintf("%s %s", marker, name)
		if m.focus == focusDocuments && i == m.docCursor {
			line = currentLineStyle.Render(line)
		}
		b.writeLine(line)
	}
	if len(m.selected) == 0 {
		b.writeLine(helperStyle.Render("Empty selection searches every document."))
	}
}

func (m *model) writeAnswerSection(b *contentBuilder, width int) {
	b.anchor(anchorAnswer)
	b.writeLine(sectionHeaderStyle.Render("Answer"))

	switch m.controller.Phase() {
	case query.PhaseIdle:
		b.writeLine(helperStyle.Render("Ask a question to get started."))
	case query.PhaseSubmitting:
		b.writeLine(questionStyle.Render(previewText(m.lastQuestion, questionPreviewLimit)))
		b.writeLine(fmt.Sprintf("%s waiting for the backend…", m.spinner.View()))
	case query.PhaseFailed:
		b.writeLine(questionStyle.Render(previewText(m.lastQuestion, questionPreviewLimit)))
		if failure := m.controller.Failure(); failure != nil {
			b.writeLine(errorStyle.Render(wordwrap.String(failure.Message, width)))
			b.writeLine(helperStyle.Render(failureHint(failure.Kind)))
		}
	case query.PhaseSucceeded:
		b.writeLine(questionStyle.Render(previewText(m.lastQuestion, questionPreviewLimit)))
		b.blank()
		m.writeAnswerBody(b, width)
		if m.display != nil && m.display.HasCitations() {
			b.blank()
			m.writeSourcesSection(b, width)
		}
		if m.display != nil {
			b.blank()
			b.writeLine(helperStyle.Render("Answered in " + m.display.ProcessingTime))
		}
	}
}

func (m *model) writeAnswerBody(b *contentBuilder, width int) {
	if m.display == nil {
		return
	}
	for _, segment := range m.display.Segments {
		switch segment.Kind {
		case render.SegmentProse:
			text := strings.TrimRight(wordwrap.String(segment.Text, width), "\n")
			if text != "" {
				b.writeLine(text)
			}
		case render.SegmentCode:
			highlighted := render.HighlightCode(segment.Text, segment.Language)
			b.writeLine(indentMultiline(strings.TrimRight(highlighted, "\n"), "  "))
		}
	}
}

func (m *model) writeSourcesSection(b *contentBuilder, width int) {
	b.anchor(anchorSources)
	b.writeLine(sectionHeaderStyle.Render(fmt.Sprintf("Sources (%d)", len(m.display.Citations))))

	for i, citation := range m.display.Citations {
		title := fmt.Sprintf("%d. %s", i+1, citation.SourceDocumentName)
		if citation.PageLabel != "" {
			title += ", " + citation.PageLabel
		}
		line := citationTitleStyle.Render(title) + "  " +
			confidenceStyle.Render(fmt.Sprintf("%d%%", citation.ConfidencePercent))
		b.writeLine(line)
		if citation.Excerpt != "" {
			b.writeLine(indentMultiline(wordwrap.String(citation.Excerpt, width-3), "   "))
		}
		if citation.ImageURL != "" {
			b.writeLine(helperStyle.Render("   image: " + m.config.Service.ResolveURL(citation.ImageURL)))
		}
	}
}

func (m *model) wrapWidth() int {
	width := m.viewport.Width - 2
	if width < minViewportWidth-viewportHorizontalPadding {
		width = minViewportWidth - viewportHorizontalPadding
	}
	return width
}

func indentMultiline(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// previewText condenses a question onto one line for the answer header.
func previewText(text string, limit int) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	runes := []rune(collapsed)
	if len(runes) <= limit {
		return collapsed
	}
	return string(runes[:limit]) + "…"
}
