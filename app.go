package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"f1-route-bot/bot"
	"f1-route-bot/internal/config"
	"f1-route-bot/internal/database"
	"f1-route-bot/internal/directory"
	"f1-route-bot/internal/logger"
	"f1-route-bot/internal/registry"
	"f1-route-bot/internal/sheets"
	"f1-route-bot/internal/telegram/client"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gopkg.in/fsnotify.v1"
)

func main() {
	var (
		cnf = &config.Conf{}

		configFile = flag.String("config", "./config/config.yml", "Usage: -config=<config_file>")
		debug      = flag.Bool("debug", false, "Print debug information on stderr")
	)

	flag.Parse()

	logger.InitLogger(*debug, *configFile)
	logger.Info("Application starting...")

	config.GetConfig(*configFile, cnf)
	cnf.RunInDebug = *debug

	if cnf.Telegram.Token == "" {
		logger.Crit("Не задано TELEGRAM_BOT_TOKEN")
	}
	if cnf.OwnerID == 0 {
		logger.Crit("Не задано BOT_OWNER_ID")
	}
	if cnf.DirectoryFile == "" {
		cnf.DirectoryFile = path.Join(path.Dir(*configFile), "directory.yml")
	}
	cnf.Telegram.HookSecret = uuid.NewString()

	if *debug {
		logger.Debug("Config:", cnf)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	cache := database.ConnectInMemoryCache()
	store := database.NewStore(cnf.DataFile)
	dir := directory.InitDirectory(cnf.DirectoryFile)
	reg := registry.New(store)
	sheetsLog := sheets.New(cnf.Sheets)
	tg := client.New(cnf.Telegram.Addr, cnf.Telegram.Token)

	app := gin.Default()
	app.Use(
		config.Inject("cnf", cnf),
		database.InjectInMemoryCache("cache", cache),
		database.InjectStore("store", store),
		directory.InjectDirectory("dir", dir),
		registry.InjectRegistry("registry", reg),
		sheets.InjectSheets("sheets", sheetsLog),
		bot.InjectSender("tg", tg),
	)

	bot.InitHooks(app, cnf, tg)

	srv := &http.Server{
		Addr:    cnf.Server.Listen,
		Handler: app,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Listen: %s\n", err)
		}
	}()

	// Стежимо за змінами довідників.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Crit(err)
	}
	defer watcher.Close()
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				log.Println("event:", event)
				if event.Op&fsnotify.Write == fsnotify.Write && event.Name == cnf.DirectoryFile {
					err = dir.UpdateDirectory(cnf.DirectoryFile)
					if err != nil {
						logger.Warning("Не коректний файл довідників!", err)
					} else {
						logger.Info("Довідники перечитано")
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Println("error:", err)
			}
		}
	}()

	if err := watcher.Add(path.Dir(cnf.DirectoryFile)); err != nil {
		logger.Crit(err)
	}

	logger.Info("Application started")

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT)

	quit := make(chan int)

	go func() {
		for {
			sig := <-signals
			switch sig {
			// kill -SIGHUP XXXX
			// kill -SIGINT XXXX or Ctrl+c
			case syscall.SIGHUP, syscall.SIGINT:
				logger.Info("Catch OS signal! Exiting...")

				bot.DestroyHooks(tg)

				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := srv.Shutdown(ctx); err != nil {
					log.Fatal("App forced to shutdown:", err)
				}

				logger.Info("Application stopped correctly!")

				quit <- 0
			default:
				logger.Warning("Unknown signal")
			}
		}
	}()

	code := <-quit

	os.Exit(code)
}
