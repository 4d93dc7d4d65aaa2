package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/treeline-labs/freemap-cli/internal/mindmap"
)

var (
	textNodeID string
	textDepth  int
)

var textCmd = &cobra.Command{
	Use:   "text [file]",
	Short: "Print a map as an indented text outline",
	Long: `Prints the node hierarchy of a map as plain text, one node per
line, indented by depth. Rich node cores are flattened to plain text.`,
	Args: cobra.ExactArgs(1),
	RunE: runText,
}

func init() {
	textCmd.Flags().StringVar(&textNodeID, "id", "", "start at this node instead of the root")
	textCmd.Flags().IntVar(&textDepth, "depth", 0, "limit the outline depth, 0 for unlimited")
	rootCmd.AddCommand(textCmd)
}

func runText(cmd *cobra.Command, args []string) error {
	m, err := mindmap.Load(args[0])
	if err != nil {
		return err
	}

	start := m.Root()
	if textNodeID != "" {
		start, err = m.NodeByID(textNodeID)
		if err != nil {
			return err
		}
	}
	if start == nil {
		return fmt.Errorf("map %s has no root node", args[0])
	}

	printOutline(cmd, start, 0)
	return nil
}

func printOutline(cmd *cobra.Command, n *mindmap.Node, depth int) {
	if textDepth > 0 && depth >= textDepth {
		return
	}
	line := n.VisibleText()
	if line == "" {
		line = n.ID()
	}
	cmd.Println(strings.Repeat("  ", depth) + line)
	for _, child := range n.Children() {
		printOutline(cmd, child, depth+1)
	}
}
