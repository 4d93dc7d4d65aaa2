package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/treeline-labs/freemap-cli/internal/core/domain"
	"github.com/treeline-labs/freemap-cli/internal/mindmap"
)

var (
	findID     string
	findCore   string
	findLink   string
	findDetail string
	findNote   string
	findIcon   string
	findStyles []string
	findAttrs  []string
	findExact  bool
	findRegex  bool
	findFold   bool
	findJSON   bool
)

var findCmd = &cobra.Command{
	Use:   "find [file]",
	Short: "Search a map for matching nodes",
	Long: `Searches every node of a map against the given criteria. All
criteria must match. Text criteria match as case-sensitive substrings
unless --exact, --regex or --ignore-case say otherwise; node ids always
match whole and case-insensitively.`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().StringVar(&findID, "id", "", "node id")
	findCmd.Flags().StringVar(&findCore, "core", "", "core text criterion")
	findCmd.Flags().StringVar(&findLink, "link", "", "hyperlink criterion")
	findCmd.Flags().StringVar(&findDetail, "detail", "", "details criterion")
	findCmd.Flags().StringVar(&findNote, "note", "", "note criterion")
	findCmd.Flags().StringVar(&findIcon, "icon", "", "builtin icon name")
	findCmd.Flags().StringArrayVar(&findStyles, "style", nil, "style name, repeatable")
	findCmd.Flags().StringArrayVar(&findAttrs, "attr", nil, "attribute criterion name=value, repeatable")
	findCmd.Flags().BoolVar(&findExact, "exact", false, "match text criteria whole")
	findCmd.Flags().BoolVar(&findRegex, "regex", false, "treat text criteria as regular expressions")
	findCmd.Flags().BoolVarP(&findFold, "ignore-case", "i", false, "match text criteria case-insensitively")
	findCmd.Flags().BoolVar(&findJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	criteria, err := findCriteria()
	if err != nil {
		return err
	}

	m, err := mindmap.Load(args[0])
	if err != nil {
		return err
	}

	nodes, err := m.FindNodes(criteria)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if findJSON {
		return outputFindJSON(cmd, nodes)
	}
	return outputFindList(cmd, nodes)
}

func findCriteria() (domain.Criteria, error) {
	c := domain.Criteria{
		ID:              findID,
		Core:            findCore,
		Link:            findLink,
		Details:         findDetail,
		Notes:           findNote,
		Icon:            findIcon,
		Styles:          findStyles,
		Exact:           findExact,
		Regex:           findRegex,
		CaseInsensitive: findFold,
	}
	for _, raw := range findAttrs {
		name, value, ok := strings.Cut(raw, "=")
		if !ok {
			return c, fmt.Errorf("attribute criterion %q is not name=value", raw)
		}
		if c.Attributes == nil {
			c.Attributes = make(map[string]string)
		}
		c.Attributes[name] = value
	}
	return c, nil
}

func outputFindList(cmd *cobra.Command, nodes []*mindmap.Node) error {
	if len(nodes) == 0 {
		cmd.Println("No matching nodes.")
		return nil
	}
	for _, n := range nodes {
		cmd.Printf("%s\t%s\n", n.ID(), n.PlainText())
	}
	return nil
}

type findResult struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Link string `json:"link,omitempty"`
}

func outputFindJSON(cmd *cobra.Command, nodes []*mindmap.Node) error {
	results := make([]findResult, 0, len(nodes))
	for _, n := range nodes {
		results = append(results, findResult{
			ID:   n.ID(),
			Text: n.PlainText(),
			Link: n.Link(),
		})
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
