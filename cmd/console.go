package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"josephlewis.net/lsd/core/console"
)

var consoleAddr string

// consoleCmd starts the interactive operator console.
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactively send and inspect messages on a running daemon.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		addr := consoleAddr
		if addr == "" {
			configuration, err := loadConfig()
			if err != nil {
				return err
			}
			addr = fmt.Sprintf("http://localhost:%d", configuration.HTTPPort)
		}

		term, err := console.New(
			console.NewClient(addr),
			os.Stdin,
			cmd.OutOrStdout(),
			cmd.ErrOrStderr(),
		)
		if err != nil {
			return err
		}

		return term.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
	consoleCmd.Flags().StringVar(&consoleAddr, "addr", "", "daemon base URL (default from config)")
}
