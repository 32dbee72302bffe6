package ui

import (
	"fmt"

	"github.com/ytget/discord-media-downloader/internal/config"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyLanguage           = "language"
	KeyDownloadFolder     = "download_folder"
	KeyChange             = "change"
	KeyOpen               = "open"
	KeyStickerCard        = "sticker_card"
	KeyEmojiCard          = "emoji_card"
	KeyStickerID          = "sticker_id"
	KeyEmojiID            = "emoji_id"
	KeyEnterID            = "enter_id"
	KeyDownload           = "download"
	KeyCopyURL            = "copy_url"
	KeyOpenInBrowser      = "open_in_browser"
	KeyReady              = "ready"
	KeyDownloading        = "downloading"
	KeyStickerSaved       = "sticker_saved"
	KeyEmojiSaved         = "emoji_saved"
	KeyErrorStatus        = "error_status"
	KeyURLCopied          = "url_copied"
	KeyFolderChanged      = "folder_changed"
	KeyInvalidID          = "invalid_id"
	KeySuccess            = "success"
	KeyStickerSavedTo     = "sticker_saved_to"
	KeyEmojiDownloaded    = "emoji_downloaded"
	KeyStickerFailed      = "sticker_failed"
	KeyEmojiFailed        = "emoji_failed"
	KeyErrorOpeningFolder = "error_opening_folder"
	KeyErrorOpeningURL    = "error_opening_url"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language; unknown codes are ignored
func (l *Localization) SetLanguage(lang string) {
	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// Format returns the localized format string for key applied to args
func (l *Localization) Format(key string, args ...interface{}) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return config.Languages
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "Discord Media Downloader",
		KeyLanguage:           "Language",
		KeyDownloadFolder:     "Download folder:",
		KeyChange:             "Change",
		KeyOpen:               "Open",
		KeyStickerCard:        "Download Sticker by ID (160×160)",
		KeyEmojiCard:          "Download Emoji by ID (48×48)",
		KeyStickerID:          "Sticker ID:",
		KeyEmojiID:            "Emoji ID:",
		KeyEnterID:            "Numeric ID",
		KeyDownload:           "Download",
		KeyCopyURL:            "Copy URL",
		KeyOpenInBrowser:      "Open in browser",
		KeyReady:              "Ready",
		KeyDownloading:        "Downloading %s…",
		KeyStickerSaved:       "Sticker saved: %s",
		KeyEmojiSaved:         "Emoji saved: %s",
		KeyErrorStatus:        "Error: %s",
		KeyURLCopied:          "URL copied to clipboard",
		KeyFolderChanged:      "Folder changed to: %s",
		KeyInvalidID:          "Invalid ID",
		KeySuccess:            "Success",
		KeyStickerSavedTo:     "Sticker saved to:\n%s",
		KeyEmojiDownloaded:    "Emoji downloaded successfully",
		KeyStickerFailed:      "Failed to download sticker",
		KeyEmojiFailed:        "Failed to download emoji",
		KeyErrorOpeningFolder: "Error opening folder",
		KeyErrorOpeningURL:    "Error opening URL",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "Discord Media Downloader",
		KeyLanguage:           "Язык",
		KeyDownloadFolder:     "Папка загрузки:",
		KeyChange:             "Изменить",
		KeyOpen:               "Открыть",
		KeyStickerCard:        "Скачать стикер по ID (160×160)",
		KeyEmojiCard:          "Скачать эмодзи по ID (48×48)",
		KeyStickerID:          "ID стикера:",
		KeyEmojiID:            "ID эмодзи:",
		KeyEnterID:            "Числовой ID",
		KeyDownload:           "Скачать",
		KeyCopyURL:            "Копировать URL",
		KeyOpenInBrowser:      "Открыть в браузере",
		KeyReady:              "Готово",
		KeyDownloading:        "Загрузка %s…",
		KeyStickerSaved:       "Стикер сохранён: %s",
		KeyEmojiSaved:         "Эмодзи сохранён: %s",
		KeyErrorStatus:        "Ошибка: %s",
		KeyURLCopied:          "URL скопирован в буфер обмена",
		KeyFolderChanged:      "Папка изменена: %s",
		KeyInvalidID:          "Неверный ID",
		KeySuccess:            "Успех",
		KeyStickerSavedTo:     "Стикер сохранён в:\n%s",
		KeyEmojiDownloaded:    "Эмодзи успешно загружен",
		KeyStickerFailed:      "Не удалось скачать стикер",
		KeyEmojiFailed:        "Не удалось скачать эмодзи",
		KeyErrorOpeningFolder: "Ошибка открытия папки",
		KeyErrorOpeningURL:    "Ошибка открытия URL",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:           "Discord Media Downloader",
		KeyLanguage:           "Idioma",
		KeyDownloadFolder:     "Pasta de download:",
		KeyChange:             "Alterar",
		KeyOpen:               "Abrir",
		KeyStickerCard:        "Baixar figurinha por ID (160×160)",
		KeyEmojiCard:          "Baixar emoji por ID (48×48)",
		KeyStickerID:          "ID da figurinha:",
		KeyEmojiID:            "ID do emoji:",
		KeyEnterID:            "ID numérico",
		KeyDownload:           "Baixar",
		KeyCopyURL:            "Copiar URL",
		KeyOpenInBrowser:      "Abrir no navegador",
		KeyReady:              "Pronto",
		KeyDownloading:        "Baixando %s…",
		KeyStickerSaved:       "Figurinha salva: %s",
		KeyEmojiSaved:         "Emoji salvo: %s",
		KeyErrorStatus:        "Erro: %s",
		KeyURLCopied:          "URL copiada para a área de transferência",
		KeyFolderChanged:      "Pasta alterada para: %s",
		KeyInvalidID:          "ID inválido",
		KeySuccess:            "Sucesso",
		KeyStickerSavedTo:     "Figurinha salva em:\n%s",
		KeyEmojiDownloaded:    "Emoji baixado com sucesso",
		KeyStickerFailed:      "Falha ao baixar a figurinha",
		KeyEmojiFailed:        "Falha ao baixar o emoji",
		KeyErrorOpeningFolder: "Erro ao abrir a pasta",
		KeyErrorOpeningURL:    "Erro ao abrir a URL",
	}
}
