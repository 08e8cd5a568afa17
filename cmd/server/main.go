package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	_ "github.com/lib/pq"

	"github.com/pvaldas/sprintbot/internal/api"
	"github.com/pvaldas/sprintbot/internal/config"
	"github.com/pvaldas/sprintbot/internal/database"
	"github.com/pvaldas/sprintbot/internal/giphy"
	"github.com/pvaldas/sprintbot/internal/notify"
	"github.com/pvaldas/sprintbot/internal/stats"
)

type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, strings.Split(value, ",")...)
	return nil
}

var (
	addr           string
	dsn            string
	allowedOrigins stringSliceFlag
)

func main() {
	flag.StringVar(&addr, "addr", "localhost:8000", "server address")
	flag.StringVar(&dsn, "dsn", "host=localhost user=postgres password=postgres dbname=postgres sslmode=disable", "database connection string")
	flag.Var(&allowedOrigins, "allowed-origins", "comma-separated list of allowed origins for CORS")
	flag.Parse()

	logger := log.New(os.Stderr, "[sprintbot] ", log.LstdFlags)

	cfg, err := config.NewConfig(addr, dsn, allowedOrigins)
	if err != nil {
		logger.Fatal("config: ", err)
	}

	dbConn, err := database.NewPgSprintbotRepository(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("db open: ", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Fatal("db close: ", err)
		}
	}()

	if err := dbConn.Migrate(); err != nil {
		logger.Fatal("db migrate: ", err)
	}

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		logger.Fatal("discord session: ", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers
	if err := session.Open(); err != nil {
		logger.Fatal("discord connect: ", err)
	}
	defer session.Close()

	gifs := giphy.NewClient(cfg.GiphyAPIKey)
	router := notify.NewRouter(cfg.ChannelRouting, cfg.DefaultChannelID)

	mux := http.NewServeMux()

	statsUpdater := stats.NewStatsUpdater(mux)

	notifier := notify.NewNotifier(logger, session, gifs, router, cfg.GuildID, statsUpdater)

	app := api.NewApp(mux, logger, dbConn, notifier, statsUpdater, cfg)

	statsUpdater.Run()
	defer statsUpdater.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Start()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		logger.Printf("received signal: %s\n", sig)
	case err := <-errCh:
		logger.Println("server:", err)
	}

	shutDownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := app.Shutdown(shutDownCtx); err != nil {
		logger.Fatalln("HTTP server shutdown:", err)
	}

	logger.Println("waiting for pending notifications...")
	if err := notifier.Shutdown(shutDownCtx); err != nil {
		logger.Println("notifier shutdown:", err)
	}

	logger.Println("shutdown complete")
}
