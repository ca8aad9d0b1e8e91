package main

import (
	"errors"
	"fmt"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/usecase"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var generateCmd = &cobra.Command{
	Use:   "generate [candidate-id]",
	Short: "Regenerate the recommendation set of one candidate, or of every candidate with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().Bool("all", false, "regenerate every candidate that has skills")
	generateCmd.Flags().Int("workers", 2, "candidates generated in parallel with --all")
	generateCmd.Flags().Int("rate", 0, "max candidate generations started per second with --all (0 = unpaced)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	if all == (len(args) == 1) {
		return errors.New("pass exactly one of a candidate id or --all")
	}

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.stop()

	c, err := e.container()
	if err != nil {
		return err
	}
	defer c.Close()

	if all {
		workers, _ := cmd.Flags().GetInt("workers")
		rate, _ := cmd.Flags().GetInt("rate")
		summary, err := c.Recommendations.GenerateAll(e.ctx, usecase.BatchOptions{Workers: workers, RatePerSecond: rate})
		if err != nil {
			return err
		}
		for id, ferr := range summary.Failed {
			e.logger.Warn("candidate generation failed",
				zap.String("candidate_id", id.String()),
				zap.Bool("retryable", usecase.Retryable(ferr)),
				zap.Error(ferr),
			)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "candidates=%d generated=%d failed=%d recommendations=%d\n",
			summary.Candidates, summary.Generated, len(summary.Failed), summary.Recommendations)
		return nil
	}

	candidateID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid candidate id: %w", err)
	}

	report, err := c.Recommendations.Generate(e.ctx, candidateID)
	if err != nil {
		return err
	}
	return printJSON(cmd, dto.NewGenerationResponse(report))
}
