package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const maxAutocompleteChoices = 25

// HandleAutocomplete routes autocomplete interactions to the appropriate handler
func HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	data := i.ApplicationCommandData()

	switch data.Name {
	case "milestone":
		handleMilestoneAutocomplete(s, i, client)
	default:
		slog.Warn("Unhandled autocomplete command", "command", data.Name)
	}
}

// handleMilestoneAutocomplete suggests milestone ids by amount or reward
func handleMilestoneAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	focused := strings.ToLower(getFocusedOptionValue(i.ApplicationCommandData().Options))

	milestones, err := client.ListMilestones()
	if err != nil {
		slog.Error("Failed to get milestones for autocomplete", "error", err)
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, maxAutocompleteChoices)
	for _, m := range milestones {
		label := fmt.Sprintf("#%d %s %s %s", m.ID, formatAmount(m.Amount), m.RewardText, m.RewardRole)
		if focused != "" && !strings.Contains(strings.ToLower(label), focused) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  strings.TrimSpace(label),
			Value: m.ID,
		})
		if len(choices) >= maxAutocompleteChoices {
			break
		}
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	}); err != nil {
		slog.Error("Failed to send autocomplete choices", "error", err)
	}
}

// getFocusedOptionValue returns the text of the focused option, descending into subcommands
func getFocusedOptionValue(options []*discordgo.ApplicationCommandInteractionDataOption) string {
	for _, opt := range options {
		if opt.Focused {
			return fmt.Sprint(opt.Value)
		}
		if len(opt.Options) > 0 {
			if v := getFocusedOptionValue(opt.Options); v != "" {
				return v
			}
		}
	}
	return ""
}
