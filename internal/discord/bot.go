package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Config holds the bot configuration
type Config struct {
	Token   string
	AppID   string
	GuildID string
	APIURL  string
	APIKey  string

	// LinkedRoleID is granted by /link
	LinkedRoleID string
	ReferralCode string
	ReferralURL  string

	HealthPort string
}

// Bot is a gateway session that dispatches slash commands to the core API
type Bot struct {
	Session  *discordgo.Session
	Client   *APIClient
	AppID    string
	GuildID  string
	Registry *CommandRegistry

	removers []func()
}

// New creates the session and wires the interaction handlers. The gateway
// is not opened until Run.
func New(cfg Config) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	// slash commands only; no message content or member intents
	s.Identify.Intents = discordgo.IntentsGuilds

	b := &Bot{
		Session:  s,
		Client:   NewAPIClient(cfg.APIURL, cfg.APIKey),
		AppID:    cfg.AppID,
		GuildID:  cfg.GuildID,
		Registry: NewCommandRegistry(),
	}
	b.removers = append(b.removers,
		s.AddHandler(b.onReady),
		s.AddHandler(b.onInteraction),
	)
	return b, nil
}

// Run opens the gateway and blocks until ctx is cancelled
func (b *Bot) Run(ctx context.Context) error {
	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}
	slog.Info("Discord bot is now running", "guild", b.GuildID)

	<-ctx.Done()

	slog.Info("Shutting down Discord bot")
	for _, remove := range b.removers {
		remove()
	}
	if err := b.Session.Close(); err != nil {
		slog.Warn("Error closing Discord session", "error", err)
	}
	return nil
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	slog.Info("Bot is ready", "user", r.User.Username, "guilds", len(r.Guilds))
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.Registry.Handle(s, i, b.Client)
}
