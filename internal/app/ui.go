package app

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/gotetra/pkg/content"
	"github.com/philipparndt/gotetra/pkg/schema"
)

// contentPane shows the table of contents, the current document and its note
type contentPane struct {
	toc   *fyne.Container
	title *widget.Label
	body  *widget.RichText
	notes *widget.Entry

	key     string
	loading bool

	onKey  func(key string)
	onNote func(key, text string)

	object fyne.CanvasObject
}

func newContentPane(onKey func(string), onNote func(key, text string)) *contentPane {
	p := &contentPane{onKey: onKey, onNote: onNote}

	p.toc = container.NewHBox()
	p.title = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	p.body = widget.NewRichText()
	p.body.Wrapping = fyne.TextWrapWord

	p.notes = widget.NewMultiLineEntry()
	p.notes.Wrapping = fyne.TextWrapWord
	p.notes.SetMinRowsVisible(6)
	p.notes.OnChanged = func(text string) {
		if p.loading || p.key == "" {
			return
		}
		p.onNote(p.key, text)
	}

	header := container.NewVBox(container.NewHScroll(p.toc), widget.NewSeparator(), p.title)
	footer := container.NewVBox(widget.NewSeparator(), widget.NewLabel("Notes"), p.notes)
	p.object = container.NewBorder(header, footer, nil, nil, container.NewVScroll(p.body))
	return p
}

func (p *contentPane) setTOC(entries []schema.TOCEntry) {
	buttons := make([]fyne.CanvasObject, 0, len(entries))
	for _, entry := range entries {
		id := entry.ID
		title := entry.Title
		if title == "" {
			title = id
		}
		buttons = append(buttons, widget.NewButton(title, func() { p.onKey(id) }))
	}
	p.toc.Objects = buttons
	p.toc.Refresh()
}

func (p *contentPane) show(doc content.Document, note string) {
	title := doc.Title
	if title == "" {
		title = doc.Key
	}
	p.title.SetText(title)
	p.body.ParseMarkdown(content.LinkKeys(doc.Markdown))
	p.bindKeyLinks(p.body.Segments)
	p.body.Refresh()
	p.setNote(doc.Key, note)
}

// showError replaces the document with an inline message
func (p *contentPane) showError(key string, err error, note string) {
	msg := fmt.Sprintf("Failed to load %q: %v", key, err)
	if errors.Is(err, content.ErrNotFound) {
		msg = fmt.Sprintf("No content for %q yet.", key)
	}
	p.title.SetText(key)
	p.showMessage(msg)
	p.setNote(key, note)
}

func (p *contentPane) showMessage(msg string) {
	p.body.Segments = []widget.RichTextSegment{
		&widget.TextSegment{Text: msg, Style: widget.RichTextStyle{ColorName: theme.ColorNameError}},
	}
	p.body.Refresh()
}

func (p *contentPane) setNote(key, text string) {
	p.loading = true
	p.key = key
	p.notes.SetText(text)
	p.loading = false
}

// bindKeyLinks turns [[Key]] links into in-app navigation
func (p *contentPane) bindKeyLinks(segments []widget.RichTextSegment) {
	for _, seg := range segments {
		switch s := seg.(type) {
		case *widget.HyperlinkSegment:
			if s.URL == nil {
				continue
			}
			key, ok := content.KeyFromLink(s.URL.String())
			if !ok {
				continue
			}
			s.OnTapped = func() { p.onKey(key) }
		case *widget.ListSegment:
			p.bindKeyLinks(s.Items)
		}
	}
}
