package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/discord-media-downloader/internal/model"
)

// MediaCard groups the widgets of one media kind: ID entry, download button,
// resolved URL and the URL actions.
type MediaCard struct {
	kind       model.MediaKind
	titleKey   string
	idLabelKey string

	card        *widget.Card
	idLabel     *widget.Label
	idEntry     *widget.Entry
	downloadBtn *widget.Button
	urlEntry    *widget.Entry
	copyBtn     *widget.Button
	browserBtn  *widget.Button
}

func newMediaCard(ui *RootUI, kind model.MediaKind, titleKey, idLabelKey string) *MediaCard {
	c := &MediaCard{kind: kind, titleKey: titleKey, idLabelKey: idLabelKey}
	l := ui.localization

	c.idLabel = widget.NewLabel(l.GetText(idLabelKey))

	c.idEntry = widget.NewEntry()
	c.idEntry.SetPlaceHolder(l.GetText(KeyEnterID))
	// Enter in the ID field behaves like the download button
	c.idEntry.OnSubmitted = func(string) {
		ui.onDownload(c)
	}

	c.downloadBtn = widget.NewButtonWithIcon(l.GetText(KeyDownload), theme.DownloadIcon(), func() {
		ui.onDownload(c)
	})
	c.downloadBtn.Importance = widget.HighImportance

	c.urlEntry = widget.NewEntry()
	c.urlEntry.Disable()

	c.copyBtn = widget.NewButtonWithIcon(l.GetText(KeyCopyURL), theme.ContentCopyIcon(), func() {
		ui.onCopyURL(c.urlEntry.Text)
	})
	c.browserBtn = widget.NewButtonWithIcon(l.GetText(KeyOpenInBrowser), theme.ComputerIcon(), func() {
		ui.onOpenInBrowser(c.urlEntry.Text)
	})

	idRow := container.NewBorder(nil, nil, c.idLabel, c.downloadBtn, c.idEntry)
	actions := container.NewHBox(layout.NewSpacer(), c.copyBtn, c.browserBtn, layout.NewSpacer())

	c.card = widget.NewCard(l.GetText(titleKey), "", container.NewVBox(idRow, c.urlEntry, actions))
	return c
}

// Container returns the card widget
func (c *MediaCard) Container() fyne.CanvasObject {
	return c.card
}

// start marks the card busy while its request is running
func (c *MediaCard) start() {
	c.downloadBtn.Disable()
}

// finish re-enables the card and shows the URL that produced the file
func (c *MediaCard) finish(res *model.Result) {
	c.downloadBtn.Enable()
	c.urlEntry.SetText(res.ResolvedURL)
}

func (c *MediaCard) refreshTexts(l *Localization) {
	c.card.SetTitle(l.GetText(c.titleKey))
	c.idLabel.SetText(l.GetText(c.idLabelKey))
	c.idEntry.SetPlaceHolder(l.GetText(KeyEnterID))
	c.downloadBtn.SetText(l.GetText(KeyDownload))
	c.copyBtn.SetText(l.GetText(KeyCopyURL))
	c.browserBtn.SetText(l.GetText(KeyOpenInBrowser))
}
