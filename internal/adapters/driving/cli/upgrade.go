package cli

import (
	"github.com/spf13/cobra"

	"github.com/treeline-labs/freemap-cli/internal/mindmap"
)

var upgradeOut string

var upgradeCmd = &cobra.Command{
	Use:   "upgrade [file]",
	Short: "Rewrite a map in the newest supported format",
	Long: `Loads a map of any supported generation and writes it back with the
newest version marker, UTF-8 encoded. FreeMind note hooks become rich
note content. Without --output the file is upgraded in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpgrade,
}

func init() {
	upgradeCmd.Flags().StringVarP(&upgradeOut, "output", "o", "", "write the upgraded map here instead of in place")
	rootCmd.AddCommand(upgradeCmd)
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	m, err := mindmap.Load(args[0])
	if err != nil {
		return err
	}

	from := m.Generation()
	if err := m.SaveWith(upgradeOut, mindmap.SaveOptions{Upgrade: true}); err != nil {
		return err
	}
	cmd.Printf("Upgraded %s (%s -> freeplane %s)\n", m.Path(), from, m.Version())
	return nil
}
