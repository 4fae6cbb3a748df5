package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	service "cfpsim/internal/app"
	"cfpsim/internal/config"
	"cfpsim/internal/domain/model"
	"cfpsim/pkg/logger"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one scenario and print the projected ranking",
	Long:  `Run the engine once over a historical season with optional result overrides and print the top 25 plus the playoff bracket`,
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().Int("season", 0, "season year to load (required)")
	simulateCmd.Flags().Int("week", 0, "target week (default: season's final week)")
	simulateCmd.Flags().StringArray("override", nil, "result override as gameID=winnerTeamID (repeatable)")
	simulateCmd.Flags().String("data-dir", "", "season data directory (default: config data_dir)")
	_ = simulateCmd.MarkFlagRequired("season")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	if err := logger.Init(); err != nil {
		return err
	}
	_ = logger.SetLevelString("warn")

	season, err := cmd.Flags().GetInt("season")
	if err != nil {
		return fmt.Errorf("failed to get season flag: %w", err)
	}
	week, err := cmd.Flags().GetInt("week")
	if err != nil {
		return fmt.Errorf("failed to get week flag: %w", err)
	}
	rawOverrides, err := cmd.Flags().GetStringArray("override")
	if err != nil {
		return fmt.Errorf("failed to get override flag: %w", err)
	}
	dataDir, err := cmd.Flags().GetString("data-dir")
	if err != nil {
		return fmt.Errorf("failed to get data-dir flag: %w", err)
	}

	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if week <= 0 {
		week = cfg.FinalWeek
	}

	overrides := make(map[string]string, len(rawOverrides))
	for _, raw := range rawOverrides {
		id, winner, ok := strings.Cut(raw, "=")
		if !ok || id == "" || winner == "" {
			return fmt.Errorf("invalid override %q; expected gameID=winnerTeamID", raw)
		}
		overrides[id] = winner
	}

	svc := newService(cfg, logger.Get())
	result, err := svc.Run(cmd.Context(), service.Request{
		Season:    season,
		Week:      week,
		Overrides: overrides,
	})
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	seedColor    = color.New(color.FgYellow)
	autoColor    = color.New(color.FgGreen)
	warnColor    = color.New(color.FgRed)
)

func printResult(result model.ScenarioResult) {
	headingColor.Printf("Season %d, week %d rankings\n", result.Season, result.Week)
	for _, e := range result.Rankings {
		fmt.Printf("%4d. %-24s %2d-%-2d  score %7.2f\n",
			e.Rank, e.TeamID, e.Snapshot.Wins, e.Snapshot.Losses, e.Score)
	}

	if len(result.PlayoffField) > 0 {
		fmt.Println()
		headingColor.Println("Playoff field")
		for _, t := range result.PlayoffField {
			bid := "at-large"
			if t.AutoBid {
				bid = autoColor.Sprintf("champion (%s)", t.Conference)
			}
			fmt.Printf("  seed %s  %-24s rank %2d  %s\n",
				seedColor.Sprintf("%2d", t.Seed), t.TeamID, t.Rank, bid)
		}

		fmt.Println()
		headingColor.Println("Bracket")
		for _, m := range result.Bracket {
			if m.TeamA == "" {
				fmt.Printf("  %-13s %s: TBD vs TBD\n", m.Round, m.Game)
				continue
			}
			if m.TeamB == "" {
				fmt.Printf("  %-13s %s: %s (seed %d) vs TBD\n", m.Round, m.Game, m.TeamA, m.SeedA)
				continue
			}
			fmt.Printf("  %-13s %s: %s (seed %d) vs %s (seed %d)\n",
				m.Round, m.Game, m.TeamA, m.SeedA, m.TeamB, m.SeedB)
		}
	}

	for _, msg := range result.Degraded {
		warnColor.Printf("warning: %s\n", msg)
	}
}
