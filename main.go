package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"pdf_extract/api"
	"pdf_extract/pdf"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const (
	// DefaultOutputDir is where extracted PDFs are written unless -o names
	// an explicit path
	DefaultOutputDir = "out"

	// DefaultMaxFileSize is the default maximum upload size for serve mode (10MB)
	DefaultMaxFileSize = 10 * 1024 * 1024

	// DefaultPort is the default server port
	DefaultPort = "8080"

	// DefaultTempDir is the default temporary directory for serve mode
	DefaultTempDir = "./temp"

	// ServerReadTimeout is the HTTP server read timeout
	ServerReadTimeout = 15 * time.Second

	// ServerWriteTimeout is the HTTP server write timeout
	ServerWriteTimeout = 15 * time.Second

	// ServerIdleTimeout is the HTTP server idle timeout
	ServerIdleTimeout = 60 * time.Second

	// GracefulShutdownTimeout is the timeout for graceful shutdown
	GracefulShutdownTimeout = 10 * time.Second
)

var logger = logrus.New()

func main() {
	// Optional .env for serve-mode configuration
	_ = godotenv.Load()

	app := &cli.App{
		Name:      "pdf_extract",
		Usage:     "extract pages from a PDF into a new document",
		ArgsUsage: "<input.pdf>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "pages",
				Aliases: []string{"p"},
				Usage:   "pages to extract, e.g. \"1,3,5-7\"",
			},
			&cli.StringFlag{
				Name:    "from",
				Aliases: []string{"f"},
				Usage:   "first page of the range",
			},
			&cli.StringFlag{
				Name:    "to",
				Aliases: []string{"t"},
				Usage:   "last page of the range",
			},
			&cli.BoolFlag{
				Name:    "by-label",
				Aliases: []string{"l"},
				Usage:   "interpret pages/from/to as page labels (e.g. roman front-matter numerals)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output filename (default derived from the selection)",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "output directory, created if absent",
				Value:   DefaultOutputDir,
			},
			&cli.BoolFlag{
				Name:  "optimize",
				Usage: "optimize the output PDF after extraction",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.SetLevel(parseLogLevel(c.String("log-level")))
			return nil
		},
		Action: runExtract,
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP extraction API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Usage:   "port to listen on",
						EnvVars: []string{"PORT"},
						Value:   DefaultPort,
					},
				},
				Action: runServe,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runExtract implements the default command: one read-parse-write pass over
// the input document.
func runExtract(c *cli.Context) error {
	if c.NArg() != 1 {
		cli.ShowAppHelpAndExit(c, 1)
	}
	input := c.Args().First()

	if _, err := os.Stat(input); os.IsNotExist(err) {
		return fmt.Errorf("input file %s not found", input)
	}

	request := pdf.Request{
		Pages:    c.String("pages"),
		From:     c.String("from"),
		To:       c.String("to"),
		ByLabel:  c.Bool("by-label"),
		Optimize: c.Bool("optimize"),
	}
	if err := request.Validate(); err != nil {
		return err
	}

	outDir := c.String("dir")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %v", outDir, err)
	}

	name := c.String("output")
	if name == "" {
		name = request.DefaultOutputName()
	}
	outPath := filepath.Join(outDir, name)

	logger.WithFields(logrus.Fields{
		"input":    input,
		"output":   outPath,
		"by_label": request.ByLabel,
	}).Debug("Starting page extraction")

	pageCount, err := pdf.ExtractFile(input, outPath, request)
	if err != nil {
		return err
	}

	fmt.Printf("Extracted %d page(s) to %s\n", pageCount, outPath)
	return nil
}

// runServe hosts the gin API for upload-based extraction.
func runServe(c *cli.Context) error {
	config := &api.Config{
		Port:        c.String("port"),
		MaxFileSize: getEnvInt64("MAX_FILE_SIZE", DefaultMaxFileSize),
		TempDir:     getEnv("TEMP_DIR", DefaultTempDir),
		Logger:      logger,
	}

	r := gin.Default()
	api.SetupRoutes(r, config)

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      r,
		ReadTimeout:  ServerReadTimeout,
		WriteTimeout: ServerWriteTimeout,
		IdleTimeout:  ServerIdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()
	logger.Infof("Server started on port %s", config.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
	return nil
}

// parseLogLevel maps a level name to a logrus level, defaulting to warn.
func parseLogLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
