package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show model details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.svc.Show(cmd.Context(), args[0], a.serverURL)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}

			if resp.Modelfile != "" {
				fmt.Fprintf(out, "Modelfile:\n%s\n", resp.Modelfile)
			}
			if len(resp.Parameters) > 0 {
				fmt.Fprintf(out, "Parameters: %s\n", resp.Parameters)
			}
			if resp.Template != "" {
				fmt.Fprintf(out, "Template:\n%s\n", resp.Template)
			}
			if resp.License != "" {
				fmt.Fprintf(out, "License:\n%s\n", resp.License)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}
