package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/logger"
	"github.com/spigell/cv-analyzer/internal/model"
	"github.com/spigell/cv-analyzer/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score <record.json>",
	Short: "Recalculate the score of a stored analysis record",
	Long:  "Reads an analysis record produced by analyze (use - for stdin) and prints a fresh score without re-extracting the document.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runScore(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().BoolP("write", "w", false, "write the new score and recommendation back into the record file")
}

func runScore(cmd *cobra.Command, path string) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	record, err := readRecord(cmd.InOrStdin(), path)
	if err != nil {
		logger.Fatal("reading the record", zap.Error(err))
	}

	result := scoring.Score(record)
	logger.Info("record scored",
		zap.Int("previous", record.Score.Total),
		zap.Int("score", result.Total),
		zap.String("rubric", result.Rubric),
	)

	if write, _ := cmd.Flags().GetBool("write"); write && path != "-" {
		record.Score = result
		record.Recommendation = scoring.Recommend(record)
		if err := writeRecord(path, record); err != nil {
			logger.Fatal("writing the record", zap.Error(err))
		}
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatal("encoding the score", zap.Error(err))
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
}

func readRecord(stdin io.Reader, path string) (model.AnalysisRecord, error) {
	var record model.AnalysisRecord

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return record, err
	}

	if err := json.Unmarshal(data, &record); err != nil {
		return record, fmt.Errorf("decoding %s: %w", path, err)
	}
	return record, nil
}

func writeRecord(path string, record model.AnalysisRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
