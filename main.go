package main

import (
	"fmt"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/discord-media-downloader/internal/config"
	"github.com/ytget/discord-media-downloader/internal/download"
	"github.com/ytget/discord-media-downloader/internal/fetch"
	"github.com/ytget/discord-media-downloader/internal/logger"
	"github.com/ytget/discord-media-downloader/internal/persist"
	"github.com/ytget/discord-media-downloader/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.discord-media-downloader"
	AppName = "Discord Media Downloader"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, &logger.Options{
		Level:      logger.ParseLevel(env.LogLevel),
		TimeFormat: logger.DefaultOptions.TimeFormat,
		AddSource:  true,
		NoColor:    env.LogNoColor,
	})))
	slog.Info(AppName+" starting", "version", version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	// Initialize services
	settings := config.NewSettings(config.NewStore(env.ConfigPath()))

	endpoints := download.NewEndpoints(env.StickerBaseURL, env.EmojiBaseURL)
	downloadSvc := download.NewService(
		fetch.NewClient(env.HTTPTimeout),
		persist.NewFileSaver(),
		endpoints,
		settings.GetDownloadDirectory(),
	)

	ui.NewRootUI(myWindow, settings, downloadSvc, env.Language)

	myWindow.ShowAndRun()
}
