package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/treeline-labs/freemap-cli/internal/mindmap"
)

var (
	newRootText string
	newForce    bool
)

var newCmd = &cobra.Command{
	Use:   "new [file]",
	Short: "Create an empty map",
	Long: `Creates a fresh map with a single root node and the default style
skeleton, and writes it to the given file.`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&newRootText, "root", "", "core text of the root node")
	newCmd.Flags().BoolVarP(&newForce, "force", "f", false, "overwrite an existing file")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !newForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
	}

	m := mindmap.New()
	if newRootText != "" {
		m.Root().SetPlainText(newRootText)
	}

	if err := m.Save(path); err != nil {
		return err
	}
	cmd.Printf("Created %s\n", path)
	return nil
}
