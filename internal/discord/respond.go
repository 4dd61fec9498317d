package discord

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Embed footers
const (
	FooterWagerBoard      = "WagerBoard"
	FooterWagerBoardAdmin = "WagerBoard Admin"
)

// Embed colors
const (
	ColorGold    = 0xf1c40f
	ColorBlurple = 0x5865f2
	ColorGreen   = 0x2ecc71
	ColorBlue    = 0x3498db
	ColorGrey    = 0x95a5a6
)

// deferResponse acknowledges within Discord's three second window. On false
// the handler must return.
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	return deferWithFlags(s, i, 0)
}

// deferEphemeral is deferResponse for replies only the invoking user can see
func deferEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	return deferWithFlags(s, i, discordgo.MessageFlagsEphemeral)
}

func deferWithFlags(s *discordgo.Session, i *discordgo.InteractionCreate, flags discordgo.MessageFlags) bool {
	resp := &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredChannelMessageWithSource}
	if flags != 0 {
		resp.Data = &discordgo.InteractionResponseData{Flags: flags}
	}
	if err := s.InteractionRespond(i.Interaction, resp); err != nil {
		slog.Error("Failed to send deferred response", "error", err)
		return false
	}
	return true
}

// editResponse replaces the deferred response
func editResponse(s *discordgo.Session, i *discordgo.InteractionCreate, edit *discordgo.WebhookEdit) {
	if _, err := s.InteractionResponseEdit(i.Interaction, edit); err != nil {
		slog.Error("Failed to edit interaction response", "error", err)
	}
}

// respondContent answers a deferred interaction with plain text
func respondContent(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	editResponse(s, i, &discordgo.WebhookEdit{Content: &message})
}

// respondError answers with a fixed message, hiding the underlying cause
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	respondContent(s, i, message)
}

// sendEmbed answers a deferred interaction with one embed
func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	editResponse(s, i, &discordgo.WebhookEdit{Embeds: &[]*discordgo.MessageEmbed{embed}})
}

// respondAPIError shows API rejections in user terms and anything else as a generic failure
func respondAPIError(s *discordgo.Session, i *discordgo.InteractionCreate, op string, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		slog.Warn(op+" rejected", "status", apiErr.StatusCode, "error", apiErr.Message)
		respondContent(s, i, formatFriendlyError(apiErr.Error()))
		return
	}
	slog.Error(op+" failed", "error", err)
	respondError(s, i, MsgGenericError)
}

// friendlyErrors rewrites known API messages, matched by substring
var friendlyErrors = []struct {
	contains string
	message  string
}{
	{"period has been set", MsgPeriodNotSet},
	{"temporarily unavailable", MsgUpstreamUnavailable},
	{"not registered under our affiliate code", MsgNotAffiliated},
	{"already been drawn", MsgDrawExists},
	{"enough tickets", MsgNoEligible},
}

func formatFriendlyError(msg string) string {
	msg = strings.TrimPrefix(msg, "API error: ")
	for _, f := range friendlyErrors {
		if strings.Contains(msg, f.contains) {
			return f.message
		}
	}
	return "❌ " + msg
}

// createEmbed builds an embed; an empty footer means FooterWagerBoard
func createEmbed(title, description string, color int, footerText string) *discordgo.MessageEmbed {
	if footerText == "" {
		footerText = FooterWagerBoard
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer:      &discordgo.MessageEmbedFooter{Text: footerText},
	}
}

// getInteractionUser returns the invoking user from a guild or DM interaction
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	switch {
	case i.Member != nil && i.Member.User != nil:
		return i.Member.User
	case i.User != nil:
		return i.User
	}
	return &discordgo.User{}
}

// getMemberRoles returns the invoking member's role ids; empty outside a guild
func getMemberRoles(i *discordgo.InteractionCreate) []string {
	if i.Member == nil {
		return []string{}
	}
	return i.Member.Roles
}

func getOptions(i *discordgo.InteractionCreate) []*discordgo.ApplicationCommandInteractionDataOption {
	return i.ApplicationCommandData().Options
}

// optionMap indexes options by name
func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// stringOption returns the trimmed option value or ""
func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := opts[name]; ok {
		return strings.TrimSpace(opt.StringValue())
	}
	return ""
}

// adminPermission restricts a command to guild administrators
func adminPermission() *int64 {
	perm := int64(discordgo.PermissionAdministrator)
	return &perm
}
