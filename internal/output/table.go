// Package output provides terminal output utilities for cooccur.
//
// This package includes:
//   - Table rendering for ranked item pairs, item frequencies, and corpus stats
//   - A progress bar for long all-pairs ranking runs
//   - Association tier coloring (positive / neutral / negative)
//
// All rendering uses ASCII characters and ANSI color codes for terminal
// output; colors are suppressed when stdout is not a TTY or NO_COLOR is set.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/cooccur/internal/ranker"
	"github.com/blackwell-systems/cooccur/internal/store"
)

// ANSI color codes for association tier display
const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorGray  = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// RenderPairTable renders ranked pair scores. Expects the scores to be
// pre-sorted by the caller; does not sort.
func RenderPairTable(scores []ranker.PairScore, metric ranker.Metric) string {
	if len(scores) == 0 {
		return "No pairs to display.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-4s %-22s %-22s %10s  %s\n",
		"#", "Item", "Item", strings.ToUpper(string(metric)), "Association"))
	sb.WriteString(strings.Repeat("─", 72))
	sb.WriteString("\n")

	for n, s := range scores {
		label := associationLabel(s.Score, metric)
		color := associationColor(s.Score, metric)

		if IsColorEnabled() {
			sb.WriteString(fmt.Sprintf("%-4d %-22s %-22s %10.4f  %s%s%s\n",
				n+1,
				truncate(s.I, 22),
				truncate(s.J, 22),
				s.Score,
				color,
				label,
				colorReset))
		} else {
			sb.WriteString(fmt.Sprintf("%-4d %-22s %-22s %10.4f  %s\n",
				n+1,
				truncate(s.I, 22),
				truncate(s.J, 22),
				s.Score,
				label))
		}
	}

	return sb.String()
}

// associationLabel classifies a score for display. Local and generalized
// mutual information are signed; the log-likelihood ratio measures strength
// of dependence without a sign, so it only distinguishes none from some.
func associationLabel(score float64, metric ranker.Metric) string {
	const nearZero = 1e-9

	if metric == ranker.MetricLogLikelihood {
		if score <= nearZero {
			return "none"
		}
		return "associated"
	}

	switch {
	case score > nearZero:
		return "positive"
	case score < -nearZero:
		return "negative"
	default:
		return "none"
	}
}

func associationColor(score float64, metric ranker.Metric) string {
	switch associationLabel(score, metric) {
	case "positive", "associated":
		return colorGreen
	case "negative":
		return colorRed
	default:
		return colorGray
	}
}

// RenderItemTable renders item frequencies, most frequent first. Expects
// pre-sorted input (the store query orders by count).
func RenderItemTable(counts []store.ItemCount, totalBaskets int) string {
	if len(counts) == 0 {
		return "No items found.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-26s %9s %9s\n", "Item", "Baskets", "Share"))
	sb.WriteString(strings.Repeat("─", 46))
	sb.WriteString("\n")

	for _, ic := range counts {
		share := "—"
		if totalBaskets > 0 {
			share = fmt.Sprintf("%.1f%%", 100*float64(ic.Count)/float64(totalBaskets))
		}
		sb.WriteString(fmt.Sprintf("%-26s %9d %9s\n",
			truncate(ic.Item, 26), ic.Count, share))
	}

	return sb.String()
}

// CorpusStats aggregates the counts shown by the stats command.
type CorpusStats struct {
	Transactions    int
	DistinctItems   int
	ItemOccurrences int
	Pairs           int
}

// RenderCorpusStats renders a one-block summary of the stored corpus.
func RenderCorpusStats(cs CorpusStats) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Transactions:     %d\n", cs.Transactions))
	sb.WriteString(fmt.Sprintf("Distinct items:   %d\n", cs.DistinctItems))
	sb.WriteString(fmt.Sprintf("Item occurrences: %d\n", cs.ItemOccurrences))
	sb.WriteString(fmt.Sprintf("Unordered pairs:  %d\n", cs.Pairs))

	if cs.Transactions > 0 {
		avg := float64(cs.ItemOccurrences) / float64(cs.Transactions)
		sb.WriteString(fmt.Sprintf("Avg basket size:  %.2f\n", avg))
	}

	return sb.String()
}

// RenderPairReport renders the full diagnostic block for one pair: the
// contingency table dump plus all three statistics.
func RenderPairReport(r *ranker.PairReport) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Pair: %s / %s  (N = %d baskets)\n\n", r.I, r.J, r.Table.N))
	sb.WriteString(r.Table.String())
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Local mutual information: %10.4f\n", r.LocalMI))
	sb.WriteString(fmt.Sprintf("Mutual information:       %10.4f\n", r.MutualInfo))
	sb.WriteString(fmt.Sprintf("Log-likelihood ratio:     %10.4f\n", r.LogLikelihood))

	return sb.String()
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
