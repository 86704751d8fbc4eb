package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/vortechstudio/app-installer/internal/errors"
	"github.com/vortechstudio/app-installer/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "app-installer",
	Short: "Bootstrap installer for a web application checkout",
	Long: `app-installer prepares a freshly cloned application in one run:

  - creates .env from .env.example and generates APP_KEY
  - writes the database settings and runs fresh migrations and seeders
  - optionally scaffolds CI workflows fetched from the template repository
  - installs follow-up packages and commits the result`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
		if jsonOutput {
			logging.SetUserOutput(cmd.ErrOrStderr(), cmd.ErrOrStderr())
		}
	},
}

// Execute runs the root command. Errors that are not installer errors
// (flag parsing, unknown commands) are printed here; installer errors have
// already been reported by the command.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	var installErr *errors.InstallError
	if err != nil && !errors.As(err, &installErr) {
		logError("%v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs and results in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)
