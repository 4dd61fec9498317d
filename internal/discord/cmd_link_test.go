package discord

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

func TestLinkCommand_AssignsRole(t *testing.T) {
	ctx := SetupTestContext(t)
	cmd, handler := LinkCommand("role-linked")

	ctx.Mux.HandleFunc("/api/v1/link", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gambler", body["affiliate_username"])
		assert.Equal(t, "kicker", body["kick_username"])
		WriteJSON(w, domain.AccountLink{AffiliateUsername: "gambler", KickUsername: "kicker"})
	})

	handler(ctx.Session, NewCommandInteraction(cmd.Name,
		&discordgo.ApplicationCommandInteractionDataOption{Name: "rainbet", Type: discordgo.ApplicationCommandOptionString, Value: " gambler "},
		&discordgo.ApplicationCommandInteractionDataOption{Name: "kick", Type: discordgo.ApplicationCommandOptionString, Value: "kicker"},
	), ctx.APIClient)

	content := ctx.LastContent()
	assert.Contains(t, content, "✅ Successfully linked your accounts!")
	assert.Contains(t, content, "Affiliate: `gambler`")
	assert.Contains(t, content, "Role <@&role-linked> assigned.")

	puts := ctx.Calls(http.MethodPut)
	require.Len(t, puts, 1)
	assert.True(t, strings.HasSuffix(puts[0].Path, "/guilds/guild-1/members/user-1/roles/role-linked"))
}

func TestLinkCommand_NotAffiliated(t *testing.T) {
	ctx := SetupTestContext(t)
	cmd, handler := LinkCommand("role-linked")
	ctx.Mux.HandleFunc("/api/v1/link", func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusForbidden, "That username is not registered under our affiliate code")
	})

	handler(ctx.Session, NewCommandInteraction(cmd.Name,
		&discordgo.ApplicationCommandInteractionDataOption{Name: "rainbet", Type: discordgo.ApplicationCommandOptionString, Value: "stranger"},
	), ctx.APIClient)

	assert.Equal(t, MsgNotAffiliated, ctx.LastContent())
	assert.Empty(t, ctx.Calls(http.MethodPut))
}

func TestUnlinkCommand(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   string
	}{
		{"unlinked", http.StatusNoContent, MsgUnlinked},
		{"nothing to unlink", http.StatusNotFound, MsgNoLinkToUnlink},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := SetupTestContext(t)
			cmd, handler := UnlinkCommand()
			ctx.Mux.HandleFunc("/api/v1/link/unlink", func(w http.ResponseWriter, r *http.Request) {
				if tt.status == http.StatusNotFound {
					WriteError(w, tt.status, "No linked account found")
					return
				}
				w.WriteHeader(tt.status)
			})

			handler(ctx.Session, NewCommandInteraction(cmd.Name), ctx.APIClient)

			assert.Equal(t, tt.want, ctx.LastContent())
		})
	}
}

func TestAccInfoCommand(t *testing.T) {
	ctx := SetupTestContext(t)
	cmd, handler := AccInfoCommand()
	require.NotNil(t, cmd.DefaultMemberPermissions)

	ctx.Mux.HandleFunc("/api/v1/link/status", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "target-9", r.URL.Query().Get("platform_id"))
		WriteJSON(w, domain.AccountLink{
			AffiliateUsername: "gambler",
			CreatedAt:         time.Date(2025, 4, 15, 10, 0, 0, 0, time.UTC),
		})
	})

	handler(ctx.Session, NewCommandInteraction(cmd.Name,
		&discordgo.ApplicationCommandInteractionDataOption{Name: "user", Type: discordgo.ApplicationCommandOptionUser, Value: "target-9"},
	), ctx.APIClient)

	content := ctx.LastContent()
	assert.Contains(t, content, "👤 Linked accounts for <@target-9>:")
	assert.Contains(t, content, "Affiliate: `gambler`")
	assert.Contains(t, content, "Kick: `-`")
	assert.Contains(t, content, "Linked since: 2025-04-15")
}

func TestAccInfoCommand_NoLink(t *testing.T) {
	ctx := SetupTestContext(t)
	cmd, handler := AccInfoCommand()
	ctx.Mux.HandleFunc("/api/v1/link/status", func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "No linked account found")
	})

	handler(ctx.Session, NewCommandInteraction(cmd.Name,
		&discordgo.ApplicationCommandInteractionDataOption{Name: "user", Type: discordgo.ApplicationCommandOptionUser, Value: "target-9"},
	), ctx.APIClient)

	assert.Equal(t, "❌ No account links found for <@target-9>.", ctx.LastContent())
}
