package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cca/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
	flagRunsStats bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show the run journal",
	Long: `Display the most recent journaled runs.

Every finished run records its rule, grid size, seed and how many
generations it ran. Use 'cca play --replay <id>' to run one again.

Examples:
  cca runs
  cca runs --limit 50
  cca runs --stats
  cca runs --clear`,
	Run: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete every journaled run")
	runsCmd.Flags().BoolVar(&flagRunsStats, "stats", false, "Show per-rule totals instead of runs")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagRunsClear:
		err = clearRuns(store)
	case flagRunsStats:
		err = printRuleStats(store)
	default:
		err = printRecentRuns(store, flagRunsLimit)
	}

	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func clearRuns(store *storage.Store) error {
	n, err := store.CountRuns()
	if err != nil {
		return err
	}
	if err := store.ClearRuns(); err != nil {
		return err
	}
	fmt.Printf("Deleted %s journaled runs.\n", humanize.Comma(int64(n)))
	return nil
}

func printRecentRuns(store *storage.Store, limit int) error {
	runs, err := store.RecentRuns(limit)
	if err != nil {
		return err
	}

	fmt.Println("Recent runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs journaled yet.")
		fmt.Println()
		fmt.Println("Start one with 'cca play'.")
		return nil
	}

	fmt.Printf("  %-8s  %-16s  %-14s  %-9s  %-12s  %s\n", "Run", "Preset", "Rule", "Size", "Generations", "When")
	fmt.Printf("  %-8s  %-16s  %-14s  %-9s  %-12s  %s\n", "---", "------", "----", "----", "-----------", "----")

	for _, r := range runs {
		id := r.RunID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Printf("  %-8s  %-16s  %-14s  %-9s  %-12s  %s\n",
			id,
			r.Preset,
			r.Rule,
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			humanize.Comma(r.Generations),
			humanize.Time(r.CreatedAt),
		)
	}

	total, err := store.CountRuns()
	if err == nil && total > len(runs) {
		fmt.Println()
		fmt.Printf("Showing %d of %s runs.\n", len(runs), humanize.Comma(int64(total)))
	}
	return nil
}

func printRuleStats(store *storage.Store) error {
	stats, err := store.GetAllRuleStats()
	if err != nil {
		return err
	}

	fmt.Println("Runs per rule")
	fmt.Println()

	if len(stats) == 0 {
		fmt.Println("No runs journaled yet.")
		return nil
	}

	rules := make([]string, 0, len(stats))
	for rule := range stats {
		rules = append(rules, rule)
	}
	sort.Strings(rules)

	fmt.Printf("  %-14s  %-6s  %-12s  %-12s  %s\n", "Rule", "Runs", "Generations", "Longest", "Last run")
	fmt.Printf("  %-14s  %-6s  %-12s  %-12s  %s\n", "----", "----", "-----------", "-------", "--------")

	for _, rule := range rules {
		s := stats[rule]
		fmt.Printf("  %-14s  %-6d  %-12s  %-12s  %s\n",
			s.Rule,
			s.Runs,
			humanize.Comma(s.Generations),
			humanize.Comma(s.LongestRun),
			humanize.Time(s.LastRun),
		)
	}
	return nil
}
