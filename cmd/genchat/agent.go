package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strandworks/genchat/agent"
	"github.com/strandworks/genchat/tools"
)

func newAgentCommand(a *app) *cobra.Command {
	var maxTurns int

	cmd := &cobra.Command{
		Use:   "agent <prompt>...",
		Short: "Answer a prompt with the tool-calling loop over built-in tools",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			registry := tools.New()
			registerBuiltinTools(registry)

			cli, err := a.newClient()
			if err != nil {
				return err
			}

			a.cfg.Chat.Tools = registry.Tools()
			session, err := a.newSession(cli)
			if err != nil {
				return err
			}

			runner, err := agent.New(session, registry,
				agent.WithObserver(a.observer),
				agent.WithMaxTurns(maxTurns))
			if err != nil {
				return err
			}

			result, err := runner.Run(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Println(result.Text)

			if len(result.ToolCalls) > 0 {
				fmt.Println("\nTool calls:")
				for i, tc := range result.ToolCalls {
					fmt.Printf("  [%d] %s(%v)\n", i+1, tc.Name, tc.Args)
					out := fmt.Sprintf("%v", tc.Response)
					if len(out) > 200 {
						out = out[:200] + "..."
					}
					if tc.IsError {
						fmt.Printf("    error: %s\n", out)
					} else {
						fmt.Printf("    -> %s\n", out)
					}
				}
			}
			fmt.Printf("\nTurns: %d\n", result.Turns)

			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			return saveTranscript(ctx, st, session)
		},
	}

	cmd.Flags().IntVar(&maxTurns, "max-turns", 10, "Maximum send cycles; 0 for unlimited")

	return cmd
}
