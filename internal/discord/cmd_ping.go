package discord

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
)

// PingCommand reports gateway heartbeat and core API round trip
func PingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Check if the bot and the leaderboard API are alive",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		began := time.Now()
		api := "API unreachable"
		if err := client.Ping(); err != nil {
			slog.Warn("Core API ping failed", "error", err)
		} else {
			api = fmt.Sprintf("API reachable (%dms)", time.Since(began).Milliseconds())
		}

		content := fmt.Sprintf("Pong! 🏓 %s, gateway %dms", api, s.HeartbeatLatency().Milliseconds())
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: content,
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		}); err != nil {
			slog.Error("Failed to respond to ping", "error", err)
		}
	}

	return cmd, handler
}
