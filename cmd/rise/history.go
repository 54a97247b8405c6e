package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rise/internal/games/rise"
	"github.com/vovakirdan/rise/internal/storage"
)

var (
	flagLimit   int
	flagClear   bool
	flagRoundID string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent rounds and wins per color",
	Long: `Display the most recent rounds, the wins of every color and the
longest round on record. --id shows one round with the seed and
difficulty needed to replay its field.

Examples:
  rise history
  rise history --limit 50
  rise history --id 3f0c9a52-5d1e-4b76-9a8e-2f4a1c7d9e10
  rise history --clear`,
	RunE:         runHistory,
	SilenceUsage: true,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rounds to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the whole round history")
	historyCmd.Flags().StringVar(&flagRoundID, "id", "", "Show a single round by its round ID")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open rounds database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagClear {
		if err := store.ClearRounds(); err != nil {
			return fmt.Errorf("cannot clear history: %w", err)
		}
		fmt.Fprintln(out, "Round history cleared.")
		return nil
	}

	if flagRoundID != "" {
		return printRound(out, store, flagRoundID)
	}

	rounds, err := store.RecentRounds(flagLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve rounds: %w", err)
	}

	fmt.Fprintln(out, "Recent Rounds")
	fmt.Fprintln(out)

	if len(rounds) == 0 {
		fmt.Fprintln(out, "No rounds recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'rise play' to record the first round!")
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-5s  %-14s  %-18s  %-9s  %-7s  %-16s  %s\n", "#", "Result", "Players", "Lasted", "Mode", "Date", "Round ID")
	fmt.Fprintf(out, "  %-5s  %-14s  %-18s  %-9s  %-7s  %-16s  %s\n", "-", "------", "-------", "------", "----", "----", "--------")

	for _, r := range rounds {
		fmt.Fprintf(out, "  %-5d  %-14s  %-18s  %-9s  %-7s  %-16s  %s\n",
			r.ID,
			r.Outcome(),
			strings.Join(r.Colors, " vs "),
			rise.FormatElapsed(r.Elapsed()),
			r.Difficulty,
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.RoundID,
		)
	}

	wins, err := store.WinsByColor()
	if err == nil && len(wins) > 0 {
		colors := make([]string, 0, len(wins))
		for c := range wins {
			colors = append(colors, c)
		}
		sort.Slice(colors, func(i, j int) bool {
			if wins[colors[i]] != wins[colors[j]] {
				return wins[colors[i]] > wins[colors[j]]
			}
			return colors[i] < colors[j]
		})

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Wins")
		for _, c := range colors {
			fmt.Fprintf(out, "  %-8s %d\n", c, wins[c])
		}
	}

	if stats, err := store.GetStats(); err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Rounds: %d  Ties: %d  Average: %s\n", stats.Rounds, stats.Ties, rise.FormatElapsed(stats.AvgElapsed))
	}
	if longest, err := store.LongestRound(); err == nil && longest != nil {
		fmt.Fprintf(out, "Longest: %s (%s)\n", rise.FormatElapsed(longest.Elapsed()), longest.Outcome())
	}
	return nil
}

// printRound prints one round in full, including what replays its field.
func printRound(out io.Writer, store *storage.Store, roundID string) error {
	r, err := store.RoundByID(roundID)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no round with ID %q", roundID)
	}

	fmt.Fprintf(out, "Round %s\n\n", r.RoundID)
	fmt.Fprintf(out, "  Result:  %s\n", r.Outcome())
	fmt.Fprintf(out, "  Players: %s\n", strings.Join(r.Colors, " vs "))
	fmt.Fprintf(out, "  Lasted:  %s\n", rise.FormatElapsed(r.Elapsed()))
	fmt.Fprintf(out, "  Mode:    %s\n", r.Difficulty)
	fmt.Fprintf(out, "  Seed:    %d\n", r.Seed)
	fmt.Fprintf(out, "  Date:    %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Replay with: rise play --seed %d --difficulty %s\n", r.Seed, r.Difficulty)
	return nil
}
