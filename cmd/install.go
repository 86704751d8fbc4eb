package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vortechstudio/app-installer/internal/app"
	"github.com/vortechstudio/app-installer/internal/errors"
	"github.com/vortechstudio/app-installer/internal/installer"
	"github.com/vortechstudio/app-installer/internal/logging"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the application",
	Long: `Install the application in the project directory.

Mandatory steps run first and abort the installation on failure: the env
file, the application key, the database settings and fresh migrations with
seeders. Optional CI/CD features are then offered one by one, followed by
the follow-up packages and a commit pushed to origin master.`,
	Example: `  app-installer install --db-database=app_db
  app-installer install --db-database=app_db --db-host=db --db-password=secret
  app-installer install --db-database=database/app.sqlite --db-connection=sqlite --no-interaction`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

var (
	installDBHost        string
	installDBPort        int
	installDBDatabase    string
	installDBUsername    string
	installDBPassword    string
	installDBConnection  string
	installPath          string
	installManifest      string
	installNoInteraction bool
	installSkipFinalize  bool
	installSkipPush      bool
)

func init() {
	installCmd.Flags().StringVar(&installDBHost, "db-host", installer.DefaultHost, "Database host")
	installCmd.Flags().IntVar(&installDBPort, "db-port", installer.DefaultPort, "Database port")
	installCmd.Flags().StringVar(&installDBDatabase, "db-database", "", "Database name (required)")
	installCmd.Flags().StringVar(&installDBUsername, "db-username", installer.DefaultUsername, "Database username")
	installCmd.Flags().StringVar(&installDBPassword, "db-password", "", "Database password")
	installCmd.Flags().StringVar(&installDBConnection, "db-connection", installer.DefaultConnection, "Database driver (mysql or sqlite)")
	installCmd.Flags().StringVarP(&installPath, "path", "p", installer.DefaultProjectRoot, "Project directory")
	installCmd.Flags().StringVar(&installManifest, "manifest", "", "Installer manifest (default: <path>/installer.toml, else built-in)")
	installCmd.Flags().BoolVarP(&installNoInteraction, "no-interaction", "n", false, "Answer every feature prompt with its default")
	installCmd.Flags().BoolVar(&installSkipFinalize, "skip-finalize", false, "Skip follow-up packages and the git snapshot")
	installCmd.Flags().BoolVar(&installSkipPush, "skip-push", false, "Commit without pushing")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	opts := installer.Options{
		Database:      installDBDatabase,
		Host:          installDBHost,
		Port:          installDBPort,
		Username:      installDBUsername,
		Password:      installDBPassword,
		Connection:    installDBConnection,
		ConnectionSet: cmd.Flags().Changed("db-connection"),
		ProjectRoot:   installPath,
		NoInteraction: installNoInteraction,
		SkipFinalize:  installSkipFinalize,
		SkipPush:      installSkipPush,
	}

	if err := opts.Validate(); err != nil {
		logError("%s", errorMessage(err))
		logging.UserLine("please run")
		logging.UserLine("  %s --help", cmd.CommandPath())
		return err
	}

	m, err := app.Default.LoadManifest(opts.ProjectRoot, installManifest)
	if err != nil {
		logError("%v", err)
		return err
	}

	logging.Debug("starting installation", "path", opts.ProjectRoot, "features", len(m.Features))
	result, err := app.Default.Installer(opts.ProjectRoot, m).Run(cmd.Context(), opts)

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(result); encErr != nil {
			logging.Debug("failed to encode result", "error", encErr)
		}
		return err
	}

	displayResult(cmd, result)
	return err
}

// errorMessage returns the message of an installer error without its cause.
func errorMessage(err error) string {
	var installErr *errors.InstallError
	if errors.As(err, &installErr) {
		return installErr.Message
	}
	return err.Error()
}

// displayResult shows the feature summary and warnings.
func displayResult(cmd *cobra.Command, r *installer.Result) {
	if r == nil || len(r.Features) == 0 {
		return
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FEATURE\tSTATUS\tFILES")
	fmt.Fprintln(w, "-------\t------\t-----")
	for _, f := range r.Features {
		files := strings.Join(f.Files, ",")
		if files == "" {
			files = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", f.Key, f.Status, files)
	}
	_ = w.Flush()

	if len(r.Warnings) > 0 {
		fmt.Fprintln(out)
		for _, warning := range r.Warnings {
			logWarning("%s", warning)
		}
	}
	if installed := r.Installed(); len(installed) > 0 {
		logSuccess("Installed features: %s", strings.Join(installed, ", "))
	} else {
		logInfo("No optional feature installed")
	}
}
