package discord

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

// ProgressCommand returns the progress command definition and handler.
// It evaluates the caller's milestones and applies the resulting role changes.
func ProgressCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "progress",
		Description: "Show your milestone progress and sync your reward roles",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferEphemeral(s, i) {
			return
		}

		user := getInteractionUser(i)
		progress, err := client.GetProgress(user.ID, user.Username, getMemberRoles(i))
		if err != nil {
			respondAPIError(s, i, "Get progress", err)
			return
		}

		granted, revoked := applyRoleDiff(s, i.GuildID, user.ID, progress)
		sendEmbed(s, i, progressEmbed(progress, granted, revoked))
	}

	return cmd, handler
}

// applyRoleDiff grants and revokes reward roles. It returns the roles actually changed.
func applyRoleDiff(s *discordgo.Session, guildID, userID string, p *domain.Progression) (granted, revoked []string) {
	if guildID == "" {
		return nil, nil
	}
	for _, role := range p.RolesToGrant {
		if err := s.GuildMemberRoleAdd(guildID, userID, role); err != nil {
			slog.Error("Failed to grant milestone role", "user_id", userID, "role_id", role, "error", err)
			continue
		}
		granted = append(granted, role)
	}
	for _, role := range p.RolesToRevoke {
		if err := s.GuildMemberRoleRemove(guildID, userID, role); err != nil {
			slog.Error("Failed to revoke milestone role", "user_id", userID, "role_id", role, "error", err)
			continue
		}
		revoked = append(revoked, role)
	}
	return granted, revoked
}

func progressEmbed(p *domain.Progression, granted, revoked []string) *discordgo.MessageEmbed {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total wagered: **%s**\n", formatAmount(p.Current))
	fmt.Fprintf(&sb, "Status: %s\n", stateLabel(p.State))
	if p.Highest != nil {
		fmt.Fprintf(&sb, "Highest reached: %s (%s)\n", formatAmount(p.Highest.Amount), milestoneReward(*p.Highest))
	}
	if p.Next != nil {
		fmt.Fprintf(&sb, "Next: %s (%s)\n", formatAmount(p.Next.Amount), milestoneReward(*p.Next))
		fmt.Fprintf(&sb, "%s\n", progressBar(p.Ratio))
	} else if p.State == domain.StateAllReached {
		sb.WriteString("🏁 Every milestone reached!\n")
	}

	embed := createEmbed("📈 Milestone Progress", strings.TrimRight(sb.String(), "\n"), ColorGreen, "")
	if len(granted) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Roles granted", Value: mentions(granted)})
	}
	if len(revoked) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Roles removed", Value: mentions(revoked)})
	}
	return embed
}

func mentions(roles []string) string {
	out := make([]string, len(roles))
	for idx, r := range roles {
		out[idx] = roleMention(r)
	}
	return strings.Join(out, " ")
}

// Milestone subcommand names
const (
	SubcommandAdd    = "add"
	SubcommandEdit   = "edit"
	SubcommandRemove = "remove"
	SubcommandList   = "list"
)

// MilestoneCommand returns the milestone admin command definition and handler
func MilestoneCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	idOption := &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionInteger,
		Name:         "id",
		Description:  "Milestone",
		Required:     true,
		Autocomplete: true,
	}
	cmd := &discordgo.ApplicationCommand{
		Name:                     "milestone",
		Description:              "Manage wager milestones (Admin only)",
		DefaultMemberPermissions: adminPermission(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandAdd,
				Description: "Add a milestone",
				Options:     milestoneFieldOptions(),
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandEdit,
				Description: "Edit a milestone",
				Options:     append([]*discordgo.ApplicationCommandOption{idOption}, milestoneFieldOptions()...),
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandRemove,
				Description: "Remove a milestone",
				Options:     []*discordgo.ApplicationCommandOption{idOption},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandList,
				Description: "List milestones",
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferEphemeral(s, i) {
			return
		}

		options := getOptions(i)
		if len(options) == 0 {
			respondError(s, i, MsgGenericError)
			return
		}
		sub := options[0]
		opts := optionMap(sub.Options)

		switch sub.Name {
		case SubcommandAdd:
			m, err := client.CreateMilestone(milestoneParams(opts))
			if err != nil {
				respondAPIError(s, i, "Create milestone", err)
				return
			}
			respondContent(s, i, fmt.Sprintf("✅ Milestone #%d added at %s: %s", m.ID, formatAmount(m.Amount), milestoneReward(*m)))
		case SubcommandEdit:
			m, err := client.UpdateMilestone(opts["id"].IntValue(), milestoneParams(opts))
			if err != nil {
				respondAPIError(s, i, "Update milestone", err)
				return
			}
			respondContent(s, i, fmt.Sprintf("✅ Milestone #%d updated to %s: %s", m.ID, formatAmount(m.Amount), milestoneReward(*m)))
		case SubcommandRemove:
			id := opts["id"].IntValue()
			if err := client.DeleteMilestone(id); err != nil {
				respondAPIError(s, i, "Delete milestone", err)
				return
			}
			respondContent(s, i, fmt.Sprintf("🗑️ Milestone #%d removed.", id))
		case SubcommandList:
			milestones, err := client.ListMilestones()
			if err != nil {
				respondAPIError(s, i, "List milestones", err)
				return
			}
			sendEmbed(s, i, milestoneListEmbed(milestones))
		default:
			respondError(s, i, MsgGenericError)
		}
	}

	return cmd, handler
}

func milestoneFieldOptions() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionNumber,
			Name:        "amount",
			Description: "Cumulative wagered amount",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "role",
			Description: "Role granted at this milestone",
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reward",
			Description: "Reward description",
		},
	}
}

func milestoneParams(opts map[string]*discordgo.ApplicationCommandInteractionDataOption) MilestoneParams {
	var params MilestoneParams
	if opt, ok := opts["amount"]; ok {
		params.Amount = strconv.FormatFloat(opt.FloatValue(), 'f', -1, 64)
	}
	if opt, ok := opts["role"]; ok {
		params.RewardRole = opt.RoleValue(nil, "").ID
	}
	params.RewardText = stringOption(opts, "reward")
	return params
}

func milestoneListEmbed(milestones []domain.Milestone) *discordgo.MessageEmbed {
	if len(milestones) == 0 {
		return createEmbed("🎯 Milestones", MsgNoMilestones, ColorGrey, FooterWagerBoardAdmin)
	}
	lines := make([]string, 0, len(milestones))
	for _, m := range milestones {
		lines = append(lines, fmt.Sprintf("`#%d` %s – %s", m.ID, formatAmount(m.Amount), milestoneReward(m)))
	}
	return createEmbed("🎯 Milestones", strings.Join(lines, "\n"), ColorBlue, FooterWagerBoardAdmin)
}
