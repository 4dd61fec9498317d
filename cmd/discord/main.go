package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/casynetic/WagerBoard_Go/internal/discord"
	"github.com/casynetic/WagerBoard_Go/internal/logger"
)

// Default values for optional configuration
const (
	DefaultHealthPort = "8082"
	DefaultAPIURL     = "http://localhost:8080"
)

// CommandFactory creates a Discord command and its handler.
type CommandFactory func() (*discordgo.ApplicationCommand, discord.CommandHandler)

func main() {
	_ = godotenv.Load()

	setupLogger()

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	bot, err := discord.New(cfg)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	registerCommands(bot, getCommandFactories(cfg))

	forceUpdate := os.Getenv("DISCORD_FORCE_COMMAND_UPDATE") == "true"
	if forceUpdate {
		slog.Info("Force command update enabled via environment variable")
	}

	if err := bot.RegisterCommands(bot.Registry, forceUpdate); err != nil {
		slog.Error("Failed to register commands", "error", err)
		// Commands registered by a previous run still work
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpServer := discord.NewHTTPServer(cfg.HealthPort, bot)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpServer.Serve(gctx) })
	g.Go(func() error { return bot.Run(gctx) })

	if err := g.Wait(); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
}

// setupLogger configures structured logging to stdout.
func setupLogger() {
	cfg := logger.NewConfig(
		getEnv("LOG_LEVEL", "info"),
		getEnv("LOG_FORMAT", "text"),
		"wagerboard-discord",
		getEnv("VERSION", "dev"),
		getEnv("ENVIRONMENT", "development"),
	)
	logger.InitLogger(cfg)
}

// loadConfig loads and validates Discord bot configuration from environment variables.
func loadConfig() (discord.Config, error) {
	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		return discord.Config{}, errors.New("DISCORD_TOKEN is required")
	}

	appID := os.Getenv("DISCORD_APP_ID")
	if appID == "" {
		return discord.Config{}, errors.New("DISCORD_APP_ID is required")
	}

	apiURL := getEnv("API_URL", DefaultAPIURL)
	slog.Info("Configured API URL", "url", apiURL)

	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		slog.Warn("API_KEY not set, discord bot requests will be rejected by the API")
	}

	linkedRole := os.Getenv("DISCORD_LINKED_ROLE_ID")
	if linkedRole == "" {
		slog.Info("DISCORD_LINKED_ROLE_ID not set, /link will not assign a role")
	}

	return discord.Config{
		Token:        token,
		AppID:        appID,
		GuildID:      os.Getenv("DISCORD_GUILD_ID"),
		APIURL:       apiURL,
		APIKey:       apiKey,
		LinkedRoleID: linkedRole,
		ReferralCode: os.Getenv("AFFILIATE_REFERRAL_CODE"),
		ReferralURL:  os.Getenv("AFFILIATE_REFERRAL_URL"),
		HealthPort:   getEnv("DISCORD_HEALTH_PORT", DefaultHealthPort),
	}, nil
}

// getCommandFactories returns all available Discord command factories.
// Commands that need configuration are wrapped here.
func getCommandFactories(cfg discord.Config) []CommandFactory {
	return []CommandFactory{
		discord.PingCommand,

		// Leaderboard commands
		discord.LeaderboardCommand,
		discord.MyRankCommand,
		func() (*discordgo.ApplicationCommand, discord.CommandHandler) {
			return discord.InfoCommand(cfg.ReferralCode, cfg.ReferralURL)
		},
		discord.SetLeaderboardCommand,

		// Lottery commands
		discord.TicketsCommand,
		discord.DrawLotteryCommand,

		// Milestone commands
		discord.ProgressCommand,
		discord.MilestoneCommand,

		// Linking commands
		func() (*discordgo.ApplicationCommand, discord.CommandHandler) {
			return discord.LinkCommand(cfg.LinkedRoleID)
		},
		discord.UnlinkCommand,
		discord.AccInfoCommand,
	}
}

// registerCommands registers all provided command factories with the bot's registry.
func registerCommands(bot *discord.Bot, factories []CommandFactory) {
	for _, factory := range factories {
		cmd, handler := factory()
		bot.Registry.Register(cmd, handler)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
