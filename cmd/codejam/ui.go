package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/vovakirdan/codejam/internal/economy"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
	muted   = color.New(color.FgHiBlack)
)

// stars renders a 1..5 rating.
func stars(score float64) string {
	n := economy.Stars(score)
	return strings.Repeat("*", n) + strings.Repeat(".", 5-n)
}

// printScores prints the per-category scores of one session.
func printScores(scores economy.Scores) {
	for i, s := range scores {
		label := fmt.Sprintf("  %-13s", economy.ScoreName(i))
		line := fmt.Sprintf("%5.2f  %s", s, stars(s))
		if i == economy.ScoreOverall {
			accent.Print(label)
			accent.Println(line)
			continue
		}
		neutral.Print(label)
		scoreColor(s).Println(line)
	}
}

func scoreColor(s float64) *color.Color {
	switch {
	case s >= 4:
		return success
	case s >= 2.5:
		return warn
	default:
		return danger
	}
}

// amount formats a counter for the CLI tables.
func amount(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2fG", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case v >= 1e4:
		return fmt.Sprintf("%.1fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
