package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/logger"
	"github.com/spigell/cv-analyzer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis engine over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "address to listen on (default is :8080)")
	serveCmd.Flags().StringP("upload-dir", "u", "", "directory holding uploaded résumés (default is ./uploads)")

	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
	viper.BindPFlag("server.upload-dir", serveCmd.Flags().Lookup("upload-dir"))
}

func runServe() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	engine, err := newEngine(ctx, config, false, logger)
	if err != nil {
		logger.Fatal("building the analysis engine", zap.Error(err))
	}

	handler, err := server.NewHandler(engine, config.Server.UploadDir, version, logger.Named("http"))
	if err != nil {
		logger.Fatal("building the http handler", zap.Error(err))
	}
	app := server.New(handler)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Error("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("starting the cv-analyzer server",
		zap.String("version", version),
		zap.String("listen", config.Server.Listen),
		zap.String("upload_dir", config.Server.UploadDir),
	)

	if err := app.Listen(config.Server.Listen); err != nil {
		logger.Fatal("serving", zap.Error(err))
	}
}
