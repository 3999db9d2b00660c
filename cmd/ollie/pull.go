package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MedGm/Ollie/internal/events"
	"github.com/MedGm/Ollie/internal/service"
)

func newPullCmd(a *app) *cobra.Command {
	var pullID string

	cmd := &cobra.Command{
		Use:   "pull NAME",
		Short: "Download a model",
		Long: `Download a model from the server, streaming progress to stderr.

Press Ctrl-C to cancel the download; the server keeps partial layers so a
later pull resumes where the server left off.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if pullID == "" {
				pullID = uuid.NewString()
			}

			a.bus.Subscribe(events.SinkFunc(renderPullEvent))

			// Ctrl-C requests cooperative cancellation; the loop stops at
			// the next chunk boundary.
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT)
			defer signal.Stop(sigCh)
			go func() {
				<-sigCh
				fmt.Fprintln(os.Stderr, "\n[ollie] Cancelling pull...")
				a.svc.CancelPull(pullID)
			}()

			res := a.svc.StartPull(cmd.Context(), service.StartPullRequest{
				Name:      name,
				PullID:    pullID,
				ServerURL: a.serverURL,
			})
			if !res.Success {
				return errors.New(res.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pullID, "id", "", "Pull identifier (generated when omitted)")
	return cmd
}

// progressLine is a best-effort view of one progress record. The record
// shape belongs to the server; unknown statuses still render.
type progressLine struct {
	Status    string `json:"status"`
	Completed int64  `json:"completed"`
	Total     int64  `json:"total"`
	Error     string `json:"error"`
	Raw       string `json:"raw"`
}

func renderPullEvent(e events.Event) {
	switch p := e.Payload.(type) {
	case events.PullStartPayload:
		fmt.Fprintf(os.Stderr, "[ollie] Pulling %s (id %s)\n", p.Name, p.PullID)
	case events.PullProgressPayload:
		var line progressLine
		if err := json.Unmarshal(p.Progress, &line); err != nil {
			return
		}
		switch {
		case line.Total > 0:
			pct := float64(line.Completed) / float64(line.Total) * 100
			fmt.Fprintf(os.Stderr, "\r  %s %.1f%% (%s / %s)   ",
				line.Status, pct, formatSize(line.Completed), formatSize(line.Total))
		case line.Error != "":
			fmt.Fprintf(os.Stderr, "\n  server error: %s\n", line.Error)
		case line.Status == "parsing_error":
			fmt.Fprintf(os.Stderr, "\n  unparseable progress line: %s\n", line.Raw)
		case line.Status != "":
			fmt.Fprintf(os.Stderr, "\n  %s\n", line.Status)
		}
	case events.PullCancelledPayload:
		fmt.Fprintln(os.Stderr, "\n[ollie] Pull cancelled")
	case events.PullErrorPayload:
		fmt.Fprintf(os.Stderr, "\n[ollie] Pull failed: %s\n", p.Error)
	case events.PullCompletePayload:
		fmt.Fprintln(os.Stderr, "\n[ollie] Pull complete")
	}
}
