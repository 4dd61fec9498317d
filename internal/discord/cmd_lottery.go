package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

// TicketsCommand returns the tickets command definition and handler
func TicketsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "tickets",
		Description: "Show your lottery tickets for the current period",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferEphemeral(s, i) {
			return
		}

		user := getInteractionUser(i)
		tickets, err := client.GetTickets(user.ID, user.Username)
		if err != nil {
			respondAPIError(s, i, "Get tickets", err)
			return
		}

		sendEmbed(s, i, ticketsEmbed(tickets))
	}

	return cmd, handler
}

func ticketsEmbed(t *domain.UserTickets) *discordgo.MessageEmbed {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** has **%s** ticket(s)\n", t.Username, formatCount(t.Tickets))
	fmt.Fprintf(&sb, "Wagered: %s\n", formatAmount(t.WageredAmount))
	fmt.Fprintf(&sb, "One ticket per %s wagered", formatAmount(t.TicketUnit))
	if t.TotalTickets > 0 && t.Tickets > 0 {
		chance := float64(t.Tickets) / float64(t.TotalTickets) * 100
		fmt.Fprintf(&sb, "\nShare of the pool: %.1f%% of %s tickets", chance, formatCount(t.TotalTickets))
	}
	return createEmbed("🎟️ Lottery Tickets", sb.String(), ColorBlue, "")
}

// DrawLotteryCommand returns the drawlottery command definition and handler
func DrawLotteryCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     "drawlottery",
		Description:              "Draw lottery winners for the current period (Admin only)",
		DefaultMemberPermissions: adminPermission(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "winners",
				Description: "Number of winners",
				Required:    true,
				MinValue:    &[]float64{1}[0],
				MaxValue:    domain.MaxLotteryWinners,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "seed",
				Description: "Seed for a reproducible draw",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		opts := optionMap(getOptions(i))
		winners := domain.DefaultLotteryWinners
		if opt, ok := opts["winners"]; ok {
			winners = int(opt.IntValue())
		}
		var seed *int64
		if opt, ok := opts["seed"]; ok {
			v := opt.IntValue()
			seed = &v
		}

		draw, err := client.DrawLottery(winners, seed, getInteractionUser(i).ID)
		if err != nil {
			respondAPIError(s, i, "Draw lottery", err)
			return
		}

		sendEmbed(s, i, drawEmbed(draw))
	}

	return cmd, handler
}

func drawEmbed(d *domain.LotteryDraw) *discordgo.MessageEmbed {
	var sb strings.Builder
	for _, w := range d.Winners {
		fmt.Fprintf(&sb, "%s **%s** (%s tickets)\n", placeLabel(w.Placement), w.Username, formatCount(w.Tickets))
	}
	fmt.Fprintf(&sb, "\n%d entrants · %s tickets · seed `%d`", d.PoolSize, formatCount(d.TotalTickets), d.Seed)

	embed := createEmbed("🎉 Lottery Results", sb.String(), ColorGreen, FooterWagerBoardAdmin)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "🗓️ Period", Value: fmt.Sprintf("%s to %s", d.Period.StartDate(), d.Period.EndDate())},
	}
	return embed
}
