package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
	"github.com/riskibarqy/darts-league/internal/domain/qualification"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// printRunSummary prints the per-player tallies of one scrape, then any
// per-match failures.
func printRunSummary(w io.Writer, s *matchstats.RunSummary) {
	fmt.Fprintf(w, "Matches: %d total, %d successful, %d failed. Players: %d\n",
		s.TotalMatches, s.Successful, s.Failed, s.TotalPlayers)

	names := make([]string, 0, len(s.Players))
	for name := range s.Players {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) > 0 {
		table := newTable(w)
		table.Header("PLAYER", "MATCHES", "180S")
		for _, name := range names {
			tally := s.Players[name]
			table.Append(name, strconv.Itoa(tally.MatchCount), strconv.Itoa(tally.Count180s))
		}
		table.Render()
	}

	if len(s.Errors) == 0 {
		return
	}
	table := newTable(w)
	table.Header("MATCH", "ERROR")
	for _, e := range s.Errors {
		table.Append(e.MatchID, e.Message)
	}
	table.Render()
}

func printLeaderboard(w io.Writer, board []matchstats.PlayerAggregate) {
	table := newTable(w)
	table.Header("#", "PLAYER", "3DA", "LEGS", "WON", "180", "140+", "100+", "HI_SCORE", "HI_FINISH", "FIRST_9", "EVENTS", "TOC")

	for _, a := range board {
		firstNine := "-"
		if a.BestFirstNine != nil {
			firstNine = fmt.Sprintf("%.2f", *a.BestFirstNine)
		}
		qualified := ""
		if a.Qualified {
			qualified = "Q"
		}
		table.Append(
			strconv.Itoa(a.Rank),
			a.PlayerName,
			fmt.Sprintf("%.2f", a.WeightedAverage),
			strconv.Itoa(a.LegsPlayed),
			strconv.Itoa(a.LegsWon),
			strconv.Itoa(a.Total180s),
			strconv.Itoa(a.Total140Plus),
			strconv.Itoa(a.Total100Plus),
			strconv.Itoa(a.HighestScore),
			strconv.Itoa(a.HighestFinish),
			firstNine,
			strconv.Itoa(len(a.EventsPlayed)),
			qualified,
		)
	}
	table.Render()
}

func printWinner(w io.Writer, winner qualification.EventWinner) {
	status := "non-qualifying event"
	if winner.Qualifying {
		status = "qualified for the Tournament of Champions"
	}
	fmt.Fprintf(w, "%s won %s (event %d): %s\n", winner.PlayerName, winner.EventName, winner.EventNumber, status)
}
