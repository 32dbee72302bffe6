package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/discord-media-downloader/internal/config"
	"github.com/ytget/discord-media-downloader/internal/download"
	"github.com/ytget/discord-media-downloader/internal/logger"
	"github.com/ytget/discord-media-downloader/internal/model"
	"github.com/ytget/discord-media-downloader/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	downloadSvc  download.Downloader
	settings     *config.Settings
	localization *Localization

	heading       *widget.Label
	folderLabel   *widget.Label
	folderEntry   *widget.Entry
	changeBtn     *widget.Button
	openFolderBtn *widget.Button
	sticker       *MediaCard
	emoji         *MediaCard
	status        binding.String

	// Desktop integrations, swapped out in tests
	chooseFolder func(start string, onChosen func(dir string))
	openURL      func(u *url.URL) error
	revealFolder func(dir string) error
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, settings *config.Settings, downloadSvc download.Downloader, language string) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(language)

	ui := &RootUI{
		window:       window,
		downloadSvc:  downloadSvc,
		settings:     settings,
		localization: localization,
		status:       binding.NewString(),
		revealFolder: platform.OpenFileInManager,
	}
	ui.chooseFolder = ui.showFolderDialog
	ui.openURL = func(u *url.URL) error {
		return fyne.CurrentApp().OpenURL(u)
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.downloadSvc.SetUpdateCallback(ui.onRequestUpdate)
	ui.downloadSvc.SetResultCallback(ui.onResult)

	ui.setupUI()

	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	window.SetFixedSize(true)

	slog.Debug("RootUI initialized", "language", localization.GetCurrentLanguage(), "download_dir", settings.GetDownloadDirectory())
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	l := ui.localization

	ui.createMenu()

	ui.heading = widget.NewLabelWithStyle(l.GetText(KeyAppTitle), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	ui.heading.Importance = widget.HighImportance

	ui.folderLabel = widget.NewLabel(l.GetText(KeyDownloadFolder))
	ui.folderEntry = widget.NewEntry()
	ui.folderEntry.SetText(ui.settings.GetDownloadDirectory())
	ui.folderEntry.Disable()
	ui.changeBtn = widget.NewButtonWithIcon(l.GetText(KeyChange), theme.FolderOpenIcon(), ui.onChangeFolder)
	ui.openFolderBtn = widget.NewButtonWithIcon(l.GetText(KeyOpen), theme.FolderIcon(), ui.onOpenFolder)
	folderRow := container.NewBorder(nil, nil, ui.folderLabel, container.NewHBox(ui.changeBtn, ui.openFolderBtn), ui.folderEntry)

	ui.sticker = newMediaCard(ui, model.KindSticker, KeyStickerCard, KeyStickerID)
	ui.emoji = newMediaCard(ui, model.KindEmoji, KeyEmojiCard, KeyEmojiID)

	_ = ui.status.Set(l.GetText(KeyReady))
	statusLabel := widget.NewLabelWithData(ui.status)
	statusLabel.Alignment = fyne.TextAlignCenter
	statusLabel.Importance = widget.LowImportance
	statusLabel.Truncation = fyne.TextTruncateEllipsis

	content := container.NewVBox(
		ui.heading,
		folderRow,
		widget.NewSeparator(),
		ui.sticker.Container(),
		ui.emoji.Container(),
	)

	ui.window.SetContent(container.NewPadded(container.NewBorder(nil, statusLabel, nil, nil, content)))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	languageMenu := fyne.NewMenu(IconLanguage + " " + ui.localization.GetText(KeyLanguage))

	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(languageMenu))
}

// onLanguageChange switches the interface language for this session
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.refreshUITexts()
	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))
	ui.heading.SetText(l.GetText(KeyAppTitle))
	ui.folderLabel.SetText(l.GetText(KeyDownloadFolder))
	ui.changeBtn.SetText(l.GetText(KeyChange))
	ui.openFolderBtn.SetText(l.GetText(KeyOpen))
	ui.sticker.refreshTexts(l)
	ui.emoji.refreshTexts(l)
}

// onDownload validates the card's ID and hands it to the download service
func (ui *RootUI) onDownload(card *MediaCard) {
	id, err := model.NormalizeMediaID(card.idEntry.Text)
	if err != nil {
		dialog.ShowError(errors.New(ui.localization.GetText(KeyInvalidID)), ui.window)
		return
	}

	card.start()
	req, err := ui.downloadSvc.Submit(card.kind, id)
	if err != nil {
		card.downloadBtn.Enable()
		ui.setStatus(ui.localization.Format(KeyErrorStatus, err.Error()))
		dialog.ShowError(err, ui.window)
		return
	}

	slog.Info("Download submitted", "request", req.ID, "title", req.GetDisplayTitle())
	ui.setStatus(ui.localization.Format(KeyDownloading, id))
}

// onRequestUpdate is called from worker goroutines
func (ui *RootUI) onRequestUpdate(req *model.DownloadRequest) {
	slog.Debug("Request update", "request", req.ID, "title", req.GetDisplayTitle(), "status", req.Status.String(), "active", req.Status.IsActive())
}

// onResult is called from worker goroutines
func (ui *RootUI) onResult(res *model.Result) {
	fyne.Do(func() {
		ui.showResult(res)
	})
}

// showResult reports a finished request in its card, the status line and a dialog
func (ui *RootUI) showResult(res *model.Result) {
	card := ui.cardFor(res.Request.Kind)
	if card == nil {
		slog.Warn("Result for unknown media kind", "kind", res.Request.Kind)
		return
	}
	card.finish(res)

	l := ui.localization
	if res.Success {
		if card.kind == model.KindSticker {
			ui.setStatus(l.Format(KeyStickerSaved, res.LocalPath))
			dialog.ShowInformation(l.GetText(KeySuccess), l.Format(KeyStickerSavedTo, res.LocalPath), ui.window)
		} else {
			ui.setStatus(l.Format(KeyEmojiSaved, res.LocalPath))
			dialog.ShowInformation(l.GetText(KeySuccess), l.GetText(KeyEmojiDownloaded), ui.window)
		}
		return
	}

	cause := res.Err
	if cause == nil {
		cause = errors.New(res.Message)
	}
	ui.setStatus(l.Format(KeyErrorStatus, cause.Error()))

	failedKey := KeyEmojiFailed
	if card.kind == model.KindSticker {
		failedKey = KeyStickerFailed
	}
	dialog.ShowError(fmt.Errorf("%s: %w", l.GetText(failedKey), cause), ui.window)
}

func (ui *RootUI) cardFor(kind model.MediaKind) *MediaCard {
	switch kind {
	case model.KindSticker:
		return ui.sticker
	case model.KindEmoji:
		return ui.emoji
	}
	return nil
}

// onChangeFolder lets the user pick a new download folder
func (ui *RootUI) onChangeFolder() {
	ui.chooseFolder(ui.settings.GetDownloadDirectory(), ui.onFolderChosen)
}

// showFolderDialog opens the folder picker at start
func (ui *RootUI) showFolderDialog(start string, onChosen func(dir string)) {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			slog.Warn("Folder picker failed", logger.Err(err))
			return
		}
		if uri == nil {
			return
		}
		onChosen(uri.Path())
	}, ui.window)

	if lister, err := storage.ListerForURI(storage.NewFileURI(start)); err == nil {
		d.SetLocation(lister)
	}
	d.Resize(fyne.NewSize(WindowWidth*0.9, WindowHeight*0.9))
	d.Show()
}

// onFolderChosen persists dir and points the download service at it
func (ui *RootUI) onFolderChosen(dir string) {
	if err := ui.settings.SetDownloadDirectory(dir); err != nil {
		slog.Error("Failed to change download folder", "dir", dir, logger.Err(err))
		ui.setStatus(ui.localization.Format(KeyErrorStatus, err.Error()))
		dialog.ShowError(err, ui.window)
		return
	}
	ui.downloadSvc.SetDownloadDirectory(dir)
	ui.folderEntry.SetText(dir)
	ui.setStatus(ui.localization.Format(KeyFolderChanged, dir))
}

// onOpenFolder reveals the download folder in the system file manager
func (ui *RootUI) onOpenFolder() {
	dir := ui.settings.GetDownloadDirectory()
	if err := ui.revealFolder(dir); err != nil {
		slog.Error("Failed to open folder", "dir", dir, logger.Err(err))
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFolder), err), ui.window)
	}
}

// onCopyURL copies a non-empty URL to the clipboard
func (ui *RootUI) onCopyURL(text string) {
	if text == "" {
		return
	}
	fyne.CurrentApp().Clipboard().SetContent(text)
	ui.setStatus(ui.localization.GetText(KeyURLCopied))
}

// onOpenInBrowser opens a non-empty URL in the default browser
func (ui *RootUI) onOpenInBrowser(text string) {
	if text == "" {
		return
	}
	u, err := url.Parse(text)
	if err == nil {
		err = ui.openURL(u)
	}
	if err != nil {
		slog.Error("Failed to open URL", "url", text, logger.Err(err))
		ui.setStatus(ui.localization.Format(KeyErrorStatus, ui.localization.GetText(KeyErrorOpeningURL)))
	}
}

// setStatus replaces the single status line
func (ui *RootUI) setStatus(msg string) {
	if err := ui.status.Set(msg); err != nil {
		slog.Warn("Failed to update status", logger.Err(err))
	}
}

// Status returns the current status line text
func (ui *RootUI) Status() string {
	text, _ := ui.status.Get()
	return text
}
