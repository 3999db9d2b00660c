package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read or change application settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the current settings as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.svc.Settings()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one setting (keys: server_url, default_model, theme)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			st, err := a.svc.Settings()
			if err != nil {
				return err
			}
			switch key {
			case "server_url":
				st.ServerURL = value
			case "default_model":
				st.DefaultModel = value
			case "theme":
				st.Theme = value
			default:
				return fmt.Errorf("unknown setting %q", key)
			}
			return a.svc.SaveSettings(st)
		},
	})

	return cmd
}
