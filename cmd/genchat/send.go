package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/spf13/cobra"

	"github.com/strandworks/genchat/core/content"
)

func newSendCommand(a *app) *cobra.Command {
	var (
		attachments []string
		stream      bool
	)

	cmd := &cobra.Command{
		Use:   "send <prompt>...",
		Short: "Send a single prompt and print the response",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			cli, err := a.newClient()
			if err != nil {
				return err
			}
			session, err := a.newSession(cli)
			if err != nil {
				return err
			}

			parts := []content.Part{content.Text(strings.Join(args, " "))}
			for _, path := range attachments {
				part, err := attachmentPart(path)
				if err != nil {
					return err
				}
				parts = append(parts, part)
			}

			if stream {
				s, err := session.SendMessageStream(ctx, parts)
				if err != nil {
					return err
				}
				for {
					chunk, err := s.Recv(ctx)
					if errors.Is(err, io.EOF) {
						break
					}
					if err != nil {
						return err
					}
					fmt.Print(chunk.Text())
				}
				fmt.Println()
			} else {
				resp, err := session.SendMessage(ctx, parts)
				if err != nil {
					return err
				}
				fmt.Println(resp.Text())
			}

			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			return saveTranscript(ctx, st, session)
		},
	}

	cmd.Flags().StringArrayVarP(&attachments, "attach", "a", nil, "File to attach to the prompt (repeatable)")
	cmd.Flags().BoolVar(&stream, "stream", false, "Print the response as it streams in")

	return cmd
}

// attachmentPart turns a local file into a message part. PDFs are flattened
// to their plain text; everything else is attached as inline data with a
// sniffed MIME type.
func attachmentPart(path string) (content.Part, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err := readPDF(path)
		if err != nil {
			return content.Part{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return content.Text(text), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return content.Part{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return content.Data(mimeType, data), nil
}

// readPDF extracts the plain text of a PDF document.
func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
