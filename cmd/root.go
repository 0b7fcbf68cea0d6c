package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/cv-analyzer/internal/analysis"
	"github.com/spigell/cv-analyzer/internal/ai/gemini"
	"github.com/spigell/cv-analyzer/internal/ai/huggingface"
)

const (
	app       = "cv-analyzer"
	envPrefix = "CV_ANALYZER"

	ProviderHuggingFace = "huggingface"
	ProviderGemini      = "gemini"
)

type Config struct {
	Analysis analysis.Config `mapstructure:"analysis"`
	AI       *AIConfig       `mapstructure:"ai"`
	Server   ServerConfig    `mapstructure:"server"`
}

type AIConfig struct {
	Enabled     bool               `mapstructure:"enabled"`
	Provider    string             `mapstructure:"provider" validate:"omitempty,oneof=huggingface gemini"`
	HuggingFace *HuggingFaceConfig `mapstructure:"huggingface"`
	Gemini      *GeminiConfig      `mapstructure:"gemini"`
}

type HuggingFaceConfig struct {
	APIURL         string        `mapstructure:"api-url" validate:"omitempty,url"`
	APIKeyFile     string        `mapstructure:"api-key-file"`
	APIKey         string        `mapstructure:"api-key" json:"-"`
	SummaryModel   string        `mapstructure:"summary-model"`
	ZeroShotModel  string        `mapstructure:"zero-shot-model"`
	NERModel       string        `mapstructure:"ner-model"`
	RequestTimeout time.Duration `mapstructure:"request-timeout" validate:"gte=0"`
	MaxLogLength   int           `mapstructure:"max-log-length" validate:"gte=0"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	APIKey       string `mapstructure:"api-key" json:"-"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries" validate:"gte=0"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

type ServerConfig struct {
	Listen string `mapstructure:"listen" validate:"required"`
	// UploadDir is where the upload layer persists résumés. The API only
	// analyses files under it.
	UploadDir string `mapstructure:"upload-dir" validate:"required"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "cv-analyzer extracts, analyses and scores résumés",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is cv-analyzer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults(viper.GetViper())
}

// setDefaults registers every key so that environment variables are picked
// up by Unmarshal even without a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("analysis.timeout", analysis.DefaultTimeout)
	v.SetDefault("analysis.min-file-bytes", 100)
	v.SetDefault("analysis.min-content-chars", 30)
	v.SetDefault("analysis.max-remote-chars", analysis.DefaultMaxRemoteChars)
	v.SetDefault("analysis.top-skills", analysis.DefaultTopSkills)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.provider", ProviderHuggingFace)
	v.SetDefault("ai.huggingface.api-url", huggingface.DefaultAPIURL)
	v.SetDefault("ai.huggingface.api-key-file", "")
	v.SetDefault("ai.huggingface.api-key", "")
	v.SetDefault("ai.huggingface.summary-model", huggingface.DefaultSummaryModel)
	v.SetDefault("ai.huggingface.zero-shot-model", huggingface.DefaultZeroShotModel)
	v.SetDefault("ai.huggingface.ner-model", huggingface.DefaultNERModel)
	v.SetDefault("ai.huggingface.request-timeout", 30*time.Second)
	v.SetDefault("ai.huggingface.max-log-length", 200)
	v.SetDefault("ai.gemini.api-key-file", "")
	v.SetDefault("ai.gemini.api-key", "")
	v.SetDefault("ai.gemini.model", gemini.DefaultModel)
	v.SetDefault("ai.gemini.max-retries", gemini.DefaultMaxRetries)
	v.SetDefault("ai.gemini.max-log-length", 200)

	v.SetDefault("server.listen", ":8080")
	v.SetDefault("server.upload-dir", "uploads")
}

func initConfig() {
	// A missing .env is fine, a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	bindEnv(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional, but we can't proceed if it is parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

// bindEnv maps analysis.top-skills to CV_ANALYZER_ANALYSIS_TOP_SKILLS and so on.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if config == nil {
		config = &Config{}
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return config, nil
}
