package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vortechstudio/app-installer/internal/app"
	"github.com/vortechstudio/app-installer/internal/installer"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List the optional features offered by install",
	Args:  cobra.NoArgs,
	RunE:  runFeatures,
}

var (
	featuresPath     string
	featuresManifest string
)

func init() {
	featuresCmd.Flags().StringVarP(&featuresPath, "path", "p", installer.DefaultProjectRoot, "Project directory")
	featuresCmd.Flags().StringVar(&featuresManifest, "manifest", "", "Installer manifest (default: <path>/installer.toml, else built-in)")
	rootCmd.AddCommand(featuresCmd)
}

func runFeatures(cmd *cobra.Command, args []string) error {
	m, err := app.Default.LoadManifest(featuresPath, featuresManifest)
	if err != nil {
		logError("%v", err)
		return err
	}

	if len(m.Features) == 0 {
		logInfo("No optional features configured.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FEATURE\tDEFAULT\tASSETS\tPROMPT")
	fmt.Fprintln(w, "-------\t-------\t------\t------")

	for _, f := range m.Features {
		def := m.Prompt.No
		if f.Default {
			def = m.Prompt.Yes
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", f.Key, def, len(f.Assets), f.Label)
	}

	return w.Flush()
}
