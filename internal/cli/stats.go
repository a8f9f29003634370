package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/config"
	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/history"
)

var statsRecent int

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().IntVar(&statsRecent, "recent", 10, "Number of recent blocks to list")
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize recorded decisions",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	st, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer st.Close()

	total, err := st.Total()
	if err != nil {
		return err
	}
	counts, err := st.RuleCounts()
	if err != nil {
		return err
	}

	fmt.Printf("decisions recorded: %d\n", total)
	if len(counts) > 0 {
		fmt.Println("blocks by rule:")
		rules := make([]string, 0, len(counts))
		for rule := range counts {
			rules = append(rules, rule)
		}
		sort.Strings(rules)
		for _, rule := range rules {
			fmt.Printf("  %-18s %d\n", rule, counts[rule])
		}
	}

	blocks, err := st.RecentBlocks(statsRecent)
	if err != nil {
		return err
	}
	if len(blocks) > 0 {
		fmt.Println("recent blocks:")
		for _, b := range blocks {
			fmt.Printf("  %s  [%s]  %s\n", b.Timestamp, b.Rule, b.Command)
		}
	}
	return nil
}
