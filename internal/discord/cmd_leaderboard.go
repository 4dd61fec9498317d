package discord

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
)

// LeaderboardCommand returns the leaderboard command definition and handler
func LeaderboardCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "leaderboard",
		Description: "Show the current wager leaderboard",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "limit",
				Description: "Number of entries (default 5)",
				Required:    false,
				MinValue:    &[]float64{1}[0],
				MaxValue:    50,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		limit := 0
		if opt, ok := optionMap(getOptions(i))["limit"]; ok {
			limit = int(opt.IntValue())
		}

		board, err := client.GetLeaderboard(limit)
		if err != nil {
			respondAPIError(s, i, "Get leaderboard", err)
			return
		}
		if len(board.Entries) == 0 {
			respondError(s, i, MsgNoLeaderboardData)
			return
		}

		embed := createEmbed(leaderboardTitle(board.Period), formatLeaderboard(board.Entries), ColorGold, updatedFooter(time.Now()))

		// Prize details are optional decoration
		if info, err := client.GetLeaderboardInfo(); err == nil {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Bonus Info 💸",
				Value: prizeLines(info.Config.Prizes),
			})
		} else {
			slog.Debug("Leaderboard info unavailable", "error", err)
		}

		sendEmbed(s, i, embed)
	}

	return cmd, handler
}

// MyRankCommand returns the myrank command definition and handler
func MyRankCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "myrank",
		Description: "Show your current rank in the leaderboard",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		rank, err := client.GetRank(user.ID, user.Username)
		if err != nil {
			if IsNotFound(err) && !isPeriodNotSet(err) {
				respondContent(s, i, fmt.Sprintf(MsgNotOnLeaderboardFmt, user.Mention()))
				return
			}
			respondAPIError(s, i, "Get rank", err)
			return
		}

		respondContent(s, i, fmt.Sprintf(MsgRankFmt, user.Mention(), rank.Entry.Rank, formatAmount(rank.Entry.WageredAmount)))
	}

	return cmd, handler
}

// InfoCommand returns the info command definition and handler.
// referralCode and referralURL are advertised in the "How to join" field when set.
func InfoCommand(referralCode, referralURL string) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "info",
		Description: "Information about the current leaderboard",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		embed := createEmbed(
			"🎰 Leaderboard Challenge",
			"Track your wagers. Climb the leaderboard. Win real cash!",
			ColorBlurple,
			"Use /leaderboard or /myrank to check your position!",
		)
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "📝 How to join",
			Value: howToJoin(referralCode, referralURL),
		})

		info, err := client.GetLeaderboardInfo()
		switch {
		case err == nil:
			embed.Fields = append(embed.Fields,
				&discordgo.MessageEmbedField{
					Name:  "🏆 Current Prizes",
					Value: prizeLines(info.Config.Prizes),
				},
				&discordgo.MessageEmbedField{
					Name:  "🗓️ Date Range",
					Value: fmt.Sprintf("%s to %s", info.Config.Period.StartDate(), info.Config.Period.EndDate()),
				},
				&discordgo.MessageEmbedField{
					Name:  "👥 Participants",
					Value: fmt.Sprintf("%d wagering · %d over the bonus threshold", info.Participants, info.BonusQualifiers),
				},
			)
		case IsNotFound(err):
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "🏆 Current Prizes",
				Value: "🥇 1st – TBA\n🥈 2nd – TBA\n🥉 3rd – TBA",
			})
		default:
			respondAPIError(s, i, "Get leaderboard info", err)
			return
		}

		sendEmbed(s, i, embed)
	}

	return cmd, handler
}

func howToJoin(code, url string) string {
	var join string
	switch {
	case code != "" && url != "":
		join = fmt.Sprintf("Register with [this link](%s) or use **code `%s`**", url, code)
	case code != "":
		join = fmt.Sprintf("Register with **code `%s`**", code)
	case url != "":
		join = fmt.Sprintf("Register with [this link](%s)", url)
	default:
		join = "Register under our affiliate code"
	}
	return join + "\nLink your account using `/link`"
}

// SetLeaderboardCommand returns the setleaderboard command definition and handler
func SetLeaderboardCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     "setleaderboard",
		Description:              "Set the leaderboard period and prizes (Admin only)",
		DefaultMemberPermissions: adminPermission(),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "start_date", Description: "Start date (YYYY-MM-DD)", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "end_date", Description: "End date (YYYY-MM-DD)", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "prize_1st", Description: "First place prize", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "prize_2nd", Description: "Second place prize", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "prize_3rd", Description: "Third place prize", Required: true},
			{Type: discordgo.ApplicationCommandOptionNumber, Name: "bonus_threshold", Description: "Wagered amount that earns the bonus"},
			{Type: discordgo.ApplicationCommandOptionString, Name: "bonus_reward", Description: "Bonus reward"},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		opts := optionMap(getOptions(i))
		params := SetPeriodParams{
			Start:       stringOption(opts, "start_date"),
			End:         stringOption(opts, "end_date"),
			PrizeFirst:  stringOption(opts, "prize_1st"),
			PrizeSecond: stringOption(opts, "prize_2nd"),
			PrizeThird:  stringOption(opts, "prize_3rd"),
			BonusReward: stringOption(opts, "bonus_reward"),
			UpdatedBy:   getInteractionUser(i).ID,
		}
		if opt, ok := opts["bonus_threshold"]; ok {
			params.BonusThreshold = strconv.FormatFloat(opt.FloatValue(), 'f', -1, 64)
		}

		cfg, err := client.SetPeriod(params)
		if err != nil {
			respondAPIError(s, i, "Set period", err)
			return
		}

		respondContent(s, i, fmt.Sprintf(MsgPeriodSetFmt, cfg.Period.StartDate(), cfg.Period.EndDate()))
	}

	return cmd, handler
}

func isPeriodNotSet(err error) bool {
	return formatFriendlyError(err.Error()) == MsgPeriodNotSet
}
