package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// LinkCommand returns the link command definition and handler.
// roleID is granted on a successful link when set.
func LinkCommand(roleID string) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "link",
		Description: "Link your affiliate and Kick accounts",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "rainbet",
				Description: "Your affiliate site username",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "kick",
				Description: "Your Kick username",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferEphemeral(s, i) {
			return
		}

		user := getInteractionUser(i)
		opts := optionMap(getOptions(i))
		affiliateName := stringOption(opts, "rainbet")
		kickName := stringOption(opts, "kick")

		link, err := client.Link(user.ID, affiliateName, kickName)
		if err != nil {
			respondAPIError(s, i, "Link account", err)
			return
		}

		var sb strings.Builder
		sb.WriteString("✅ Successfully linked your accounts!\n")
		fmt.Fprintf(&sb, "Affiliate: `%s`\n", link.AffiliateUsername)
		if link.KickUsername != "" {
			fmt.Fprintf(&sb, "Kick: `%s`\n", link.KickUsername)
		}

		if roleID != "" && i.GuildID != "" {
			if err := s.GuildMemberRoleAdd(i.GuildID, user.ID, roleID); err != nil {
				slog.Error("Failed to assign linked role", "user_id", user.ID, "role_id", roleID, "error", err)
				sb.WriteString("⚠️ The linked role could not be assigned. Please contact an admin.")
			} else {
				fmt.Fprintf(&sb, "Role %s assigned.", roleMention(roleID))
			}
		}

		respondContent(s, i, strings.TrimRight(sb.String(), "\n"))
	}

	return cmd, handler
}

// UnlinkCommand returns the unlink command definition and handler
func UnlinkCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "unlink",
		Description: "Unlink your affiliate and Kick accounts",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferEphemeral(s, i) {
			return
		}

		user := getInteractionUser(i)
		if err := client.Unlink(user.ID); err != nil {
			if IsNotFound(err) {
				respondContent(s, i, MsgNoLinkToUnlink)
				return
			}
			respondAPIError(s, i, "Unlink account", err)
			return
		}

		respondContent(s, i, MsgUnlinked)
	}

	return cmd, handler
}

// AccInfoCommand returns the accinfo command definition and handler
func AccInfoCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     "accinfo",
		Description:              "Admin only – show linked account info for a user",
		DefaultMemberPermissions: adminPermission(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user you want to query",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferEphemeral(s, i) {
			return
		}

		opt, ok := optionMap(getOptions(i))["user"]
		if !ok {
			respondError(s, i, MsgGenericError)
			return
		}
		target := opt.UserValue(nil)

		link, err := client.GetLinkStatus(target.ID)
		if err != nil {
			if IsNotFound(err) {
				respondContent(s, i, fmt.Sprintf(MsgNoLinksForFmt, target.Mention()))
				return
			}
			respondAPIError(s, i, "Get link status", err)
			return
		}

		kick := link.KickUsername
		if kick == "" {
			kick = "-"
		}
		respondContent(s, i, fmt.Sprintf("👤 Linked accounts for %s:\nAffiliate: `%s`\nKick: `%s`\nLinked since: %s",
			target.Mention(), link.AffiliateUsername, kick, link.CreatedAt.UTC().Format("2006-01-02")))
	}

	return cmd, handler
}
