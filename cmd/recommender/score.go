package main

import (
	"fmt"

	"talent-match/internal/delivery/http/dto"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score <candidate-id> <job-id>",
	Short: "Score one candidate against one job without storing anything",
	Args:  cobra.ExactArgs(2),
	RunE:  runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	candidateID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid candidate id: %w", err)
	}
	jobID, err := uuid.Parse(args[1])
	if err != nil {
		return fmt.Errorf("invalid job id: %w", err)
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

	res, err := c.Matching.ScoreOne(e.ctx, candidateID, jobID)
	if err != nil {
		return err
	}
	return printJSON(cmd, dto.NewMatchResultResponse(res))
}
