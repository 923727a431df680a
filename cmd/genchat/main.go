// Command genchat is a terminal front end for the chat session library. It
// sends one-shot prompts, runs an interactive REPL, drives the tool-calling
// agent loop, and manages persisted transcripts.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/strandworks/genchat/chat"
	"github.com/strandworks/genchat/client"
	"github.com/strandworks/genchat/core/content"
	"github.com/strandworks/genchat/observability"
	"github.com/strandworks/genchat/store"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the state shared by all subcommands: the merged configuration
// and the observer every subsystem reports through.
type app struct {
	cfg      *Config
	observer observability.Observer

	configFile string
	apiKey     string
	model      string
	verbose    bool
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "genchat",
		Short: "Chat with generative language models from the terminal",
		Long: `genchat is a terminal client for the generative language API.

It keeps ordered conversation history across sends, streams responses as
they arrive, persists transcripts for later resumption, and can drive a
tool-calling loop against locally registered tools.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "Path to JSON config file")
	root.PersistentFlags().StringVar(&a.apiKey, "api-key", "", "API key (overrides config and GENCHAT_API_KEY)")
	root.PersistentFlags().StringVarP(&a.model, "model", "m", "", "Model to generate with (overrides config)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging to stderr")

	root.AddCommand(newSendCommand(a))
	root.AddCommand(newChatCommand(a))
	root.AddCommand(newAgentCommand(a))
	root.AddCommand(newTranscriptsCommand(a))

	return root
}

// setup resolves the effective configuration before any subcommand runs:
// defaults, then the config file, then the environment, then flags.
func (a *app) setup() error {
	cfg := DefaultConfig()
	if a.configFile != "" {
		loaded, err := LoadConfig(a.configFile)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	if key := os.Getenv("GENCHAT_API_KEY"); key != "" {
		cfg.Client.APIKey = key
	}
	if a.apiKey != "" {
		cfg.Client.APIKey = a.apiKey
	}
	if a.model != "" {
		cfg.Model = a.model
	}

	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	a.observer = observability.NewSlogObserver(logger)

	a.cfg = &cfg
	return nil
}

// newClient builds the API client from the resolved configuration.
func (a *app) newClient() (*client.Client, error) {
	return client.New(&a.cfg.Client, client.WithObserver(a.observer))
}

// newSession builds a chat session over cli with the configured session
// parameters. A configured system prompt becomes the system instruction
// unless the config file set one directly.
func (a *app) newSession(cli *client.Client, opts ...chat.Option) (*chat.Chat, error) {
	params := a.cfg.Chat
	if a.cfg.SystemPrompt != "" && params.SystemInstruction == nil {
		params.SystemInstruction = &content.Content{
			Role:  content.RoleSystem,
			Parts: []content.Part{content.Text(a.cfg.SystemPrompt)},
		}
	}

	opts = append(opts, chat.WithObserver(a.observer))
	return chat.New(cli, a.cfg.Model, &params, opts...)
}

// openStore builds the transcript store, or nil when persistence is not
// configured.
func (a *app) openStore(ctx context.Context) (store.Store, error) {
	return store.New(ctx, &a.cfg.Store)
}

// saveTranscript writes the session's current history to st under the
// session ID, carrying the original creation time across overwrites. A nil
// store or an empty history saves nothing.
func saveTranscript(ctx context.Context, st store.Store, session *chat.Chat) error {
	if st == nil {
		return nil
	}

	history, err := session.History(ctx)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		return nil
	}

	record := &store.Record{
		ID:       session.ID(),
		Model:    session.Model(),
		Contents: history,
	}
	if existing, err := st.Load(ctx, record.ID); err == nil && existing != nil {
		record.CreatedAt = existing.CreatedAt
	}
	return st.Save(ctx, record)
}
