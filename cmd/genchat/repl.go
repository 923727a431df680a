package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/strandworks/genchat/chat"
	"github.com/strandworks/genchat/store"
)

var (
	promptColor = color.New(color.FgCyan).SprintFunc()
	replyColor  = color.New(color.FgGreen).SprintFunc()
	errorColor  = color.New(color.FgRed).SprintFunc()
	faintColor  = color.New(color.FgHiBlack).SprintFunc()
)

func newChatCommand(a *app) *cobra.Command {
	var resume string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cli, err := a.newClient()
			if err != nil {
				return err
			}
			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}

			var opts []chat.Option
			if resume != "" {
				if st == nil {
					return errors.New("resuming requires a configured store")
				}
				record, err := st.Load(ctx, resume)
				if err != nil {
					return err
				}
				if record == nil {
					return fmt.Errorf("no transcript %q", resume)
				}
				a.cfg.Chat.History = record.Contents
				if record.Model != "" {
					a.cfg.Model = record.Model
				}
				opts = append(opts, chat.WithID(record.ID))
			}

			session, err := a.newSession(cli, opts...)
			if err != nil {
				return err
			}

			return runREPL(ctx, session, st, resume != "")
		},
	}

	cmd.Flags().StringVarP(&resume, "resume", "r", "", "Resume a stored transcript by session ID")

	return cmd
}

// runREPL reads prompts line by line and streams each reply to the terminal,
// saving the transcript after every exchange when a store is configured.
func runREPL(ctx context.Context, session *chat.Chat, st store.Store, resumed bool) error {
	if resumed {
		fmt.Printf("Resumed session %s (%d turns)\n", session.ID(), session.Len())
	} else {
		fmt.Printf("Session %s\n", session.ID())
	}
	fmt.Println(faintColor("Type a message and press Enter. 'exit' or Ctrl+D to quit."))
	fmt.Println()

	homeDir, _ := os.UserHomeDir()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          promptColor("you> "),
		HistoryFile:     filepath.Join(homeDir, ".genchat_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           readline.NewCancelableStdin(os.Stdin),
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		if err := exchange(ctx, session, line); err != nil {
			fmt.Printf("%s %v\n\n", errorColor("error:"), err)
			continue
		}

		if err := saveTranscript(ctx, st, session); err != nil {
			fmt.Printf("%s %v\n", errorColor("save failed:"), err)
		}
	}

	return nil
}

// exchange sends one line and streams the reply to stdout.
func exchange(ctx context.Context, session *chat.Chat, line string) error {
	stream, err := session.SendMessageStream(ctx, line)
	if err != nil {
		return err
	}

	fmt.Print(replyColor("model> "))
	for {
		chunk, err := stream.Recv(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fmt.Println()
			return err
		}
		fmt.Print(chunk.Text())
	}
	fmt.Println()
	fmt.Println()
	return nil
}
