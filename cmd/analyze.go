package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/analysis"
	"github.com/spigell/cv-analyzer/internal/document"
	"github.com/spigell/cv-analyzer/internal/logger"
	"github.com/spigell/cv-analyzer/internal/model"
)

var errNoDocuments = errors.New("no supported documents found")

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file or directory>",
	Short: "Analyze a résumé and print the analysis record as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAnalyze(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("ext", "e", "", "document extension, derived from the file name when empty")
	analyzeCmd.Flags().BoolP("local-only", "l", false, "skip remote inference and use local heuristics only")

	viper.BindPFlag("local-only", analyzeCmd.Flags().Lookup("local-only"))
}

func runAnalyze(cmd *cobra.Command, path string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	engine, err := newEngine(ctx, config, viper.GetBool("local-only"), logger)
	if err != nil {
		logger.Fatal("building the analysis engine", zap.Error(err))
	}

	info, err := os.Stat(path)
	if err != nil {
		logger.Fatal("reading the document", zap.Error(err))
	}
	if info.IsDir() {
		path, err = selectDocument(path, engine.Supports)
		if err != nil {
			logger.Fatal("selecting a document", zap.Error(err))
		}
	}

	ext, _ := cmd.Flags().GetString("ext")
	record, err := engine.Analyze(ctx, model.RawDocument{Path: path, Ext: ext})
	if err != nil {
		var inputErr *document.InputError
		if errors.As(err, &inputErr) {
			logger.Fatal("document is unusable",
				zap.String("kind", inputErr.Kind.Error()),
				zap.String("file", path),
				zap.Error(err),
			)
		}
		logger.Fatal("analyzing the document", zap.Error(err))
	}

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		logger.Fatal("encoding the record", zap.Error(err))
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
}

// newEngine wires the configured inference provider into an engine. Remote
// analysis is skipped when localOnly is set or the provider is disabled.
func newEngine(ctx context.Context, config *Config, localOnly bool, log *zap.Logger) (*analysis.Engine, error) {
	aiConfig := config.AI
	if localOnly {
		aiConfig = nil
	}

	provider, err := newInference(ctx, aiConfig, log)
	if err != nil {
		return nil, fmt.Errorf("building ai provider: %w", err)
	}
	if provider == nil {
		log.Info("remote analysis is disabled, using local heuristics only")
	}

	return analysis.New(config.Analysis, provider, log), nil
}

// selectDocument lets the user pick one supported file from dir.
func selectDocument(dir string, supported func(ext string) bool) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	items := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if supported(model.RawDocument{Path: entry.Name()}.Extension()) {
			items = append(items, entry.Name())
		}
	}
	if len(items) == 0 {
		return "", fmt.Errorf("%w in %s", errNoDocuments, dir)
	}
	sort.Strings(items)

	documentPrompt := promptui.Select{
		Label: "Choose a résumé and press ENTER",
		Items: items,
		Size:  10,
	}

	_, selected, err := documentPrompt.Run()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, selected), nil
}
