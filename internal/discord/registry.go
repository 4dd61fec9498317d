package discord

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/casynetic/WagerBoard_Go/internal/metrics"
)

// CommandHandler handles a slash command
type CommandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient)

// CommandRegistry maps command names to their definitions and handlers
type CommandRegistry struct {
	Commands map[string]*discordgo.ApplicationCommand
	Handlers map[string]CommandHandler
	stats    *commandStats
}

// NewCommandRegistry creates an empty registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands: make(map[string]*discordgo.ApplicationCommand),
		Handlers: make(map[string]CommandHandler),
		stats:    newCommandStats(),
	}
}

// Register adds or replaces a command
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// Handle dispatches slash commands and autocomplete; other interaction types are ignored
func (r *CommandRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		h, ok := r.Handlers[name]
		if !ok {
			slog.Warn("Unknown command", "command", name)
			return
		}
		r.stats.record(time.Now())
		metrics.BotCommands.WithLabelValues(name).Inc()
		h(s, i, client)
	case discordgo.InteractionApplicationCommandAutocomplete:
		HandleAutocomplete(s, i, client)
	}
}

// sorted returns the registered commands ordered by name
func (r *CommandRegistry) sorted() []*discordgo.ApplicationCommand {
	cmds := make([]*discordgo.ApplicationCommand, 0, len(r.Commands))
	for _, cmd := range r.Commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(a, b int) bool { return cmds[a].Name < cmds[b].Name })
	return cmds
}

// RegisterCommands publishes the registry to Discord (guild scoped, or global
// when GuildID is empty). The bulk overwrite is skipped when Discord already
// has an identical set, since command writes are rate limited.
func (b *Bot) RegisterCommands(registry *CommandRegistry, forceUpdate bool) error {
	desired := registry.sorted()

	if !forceUpdate {
		existing, err := b.Session.ApplicationCommands(b.AppID, b.GuildID)
		if err != nil {
			return fmt.Errorf("failed to fetch existing commands: %w", err)
		}
		if commandsEqual(existing, desired) {
			slog.Info("Commands unchanged, skipping registration", "count", len(existing), "guild_id", b.GuildID)
			return nil
		}
		slog.Info("Commands changed", "existing", len(existing), "desired", len(desired))
	}

	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, b.GuildID, desired); err != nil {
		return fmt.Errorf("failed to update commands: %w", err)
	}
	slog.Info("Commands registered", "count", len(desired), "forced", forceUpdate, "guild_id", b.GuildID)
	return nil
}

// commandShape is the subset of a command Discord echoes back unchanged
type commandShape struct {
	Name        string        `json:"n"`
	Description string        `json:"d"`
	Permissions *int64        `json:"p,omitempty"`
	Options     []optionShape `json:"o,omitempty"`
}

type optionShape struct {
	Type         discordgo.ApplicationCommandOptionType `json:"t"`
	Name         string                                 `json:"n"`
	Description  string                                 `json:"d"`
	Required     bool                                   `json:"r,omitempty"`
	Autocomplete bool                                   `json:"a,omitempty"`
	Choices      []string                               `json:"c,omitempty"`
	Options      []optionShape                          `json:"o,omitempty"`
}

func shapeOptions(opts []*discordgo.ApplicationCommandOption) []optionShape {
	if len(opts) == 0 {
		return nil
	}
	out := make([]optionShape, len(opts))
	for i, o := range opts {
		out[i] = optionShape{
			Type:         o.Type,
			Name:         o.Name,
			Description:  o.Description,
			Required:     o.Required,
			Autocomplete: o.Autocomplete,
			Options:      shapeOptions(o.Options),
		}
		for _, c := range o.Choices {
			out[i].Choices = append(out[i].Choices, fmt.Sprintf("%s=%v", c.Name, c.Value))
		}
	}
	return out
}

// commandSignature canonicalises a command for comparison
func commandSignature(cmd *discordgo.ApplicationCommand) string {
	raw, _ := json.Marshal(commandShape{
		Name:        cmd.Name,
		Description: cmd.Description,
		Permissions: cmd.DefaultMemberPermissions,
		Options:     shapeOptions(cmd.Options),
	})
	return string(raw)
}

// commandsEqual reports whether both sets hold the same commands, ignoring order
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}
	have := make(map[string]string, len(existing))
	for _, cmd := range existing {
		have[cmd.Name] = commandSignature(cmd)
	}
	for _, cmd := range desired {
		if sig, ok := have[cmd.Name]; !ok || sig != commandSignature(cmd) {
			return false
		}
	}
	return true
}
