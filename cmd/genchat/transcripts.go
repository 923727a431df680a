package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strandworks/genchat/core/content"
	"github.com/strandworks/genchat/store"
)

func newTranscriptsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcripts",
		Short: "Manage stored transcripts",
	}

	cmd.AddCommand(newTranscriptsListCommand(a))
	cmd.AddCommand(newTranscriptsShowCommand(a))
	cmd.AddCommand(newTranscriptsRemoveCommand(a))

	return cmd
}

func newTranscriptsListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored transcripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := requireStore(ctx, a)
			if err != nil {
				return err
			}

			ids, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Println("no transcripts stored")
				return nil
			}

			for _, id := range ids {
				record, err := st.Load(ctx, id)
				if err != nil {
					return err
				}
				if record == nil {
					continue
				}
				fmt.Printf("%s  %s  %d turns  %s\n",
					record.ID, record.Model, len(record.Contents),
					record.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newTranscriptsShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a stored transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := requireStore(ctx, a)
			if err != nil {
				return err
			}

			record, err := st.Load(ctx, args[0])
			if err != nil {
				return err
			}
			if record == nil {
				return fmt.Errorf("no transcript %q", args[0])
			}

			fmt.Printf("%s  %s  updated %s\n\n", record.ID, record.Model,
				record.UpdatedAt.Local().Format("2006-01-02 15:04"))
			for _, turn := range record.Contents {
				fmt.Printf("%s %s\n", rolePrefix(turn.Role), turnText(turn))
			}
			return nil
		},
	}
}

func newTranscriptsRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a stored transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := requireStore(ctx, a)
			if err != nil {
				return err
			}
			return st.Delete(ctx, args[0])
		},
	}
}

// requireStore opens the transcript store and fails when persistence is not
// configured, since every transcripts subcommand needs a backend.
func requireStore(ctx context.Context, a *app) (store.Store, error) {
	st, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, errors.New("no store configured; set store.path or store.mongo_uri in the config file")
	}
	return st, nil
}

func rolePrefix(role string) string {
	switch role {
	case content.RoleUser, "":
		return promptColor("you>")
	case content.RoleModel:
		return replyColor("model>")
	default:
		return faintColor(role + ">")
	}
}

// turnText flattens a turn for display, marking non-text parts.
func turnText(turn *content.Content) string {
	var sb strings.Builder
	for _, part := range turn.Parts {
		switch {
		case part.Text != "":
			sb.WriteString(part.Text)
		case part.InlineData != nil:
			fmt.Fprintf(&sb, "[%s, %d bytes]", part.InlineData.MIMEType, len(part.InlineData.Data))
		case part.FunctionCall != nil:
			fmt.Fprintf(&sb, "[call %s]", part.FunctionCall.Name)
		case part.FunctionResponse != nil:
			fmt.Fprintf(&sb, "[result %s]", part.FunctionResponse.Name)
		}
	}
	return sb.String()
}
