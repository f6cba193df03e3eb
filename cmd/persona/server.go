package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kalambet/persona/internal/analytics"
	"github.com/kalambet/persona/internal/api"
	"github.com/kalambet/persona/internal/chat"
	"github.com/kalambet/persona/internal/config"
	"github.com/kalambet/persona/internal/content"
	"github.com/kalambet/persona/internal/device"
	"github.com/kalambet/persona/internal/profile"
	"github.com/kalambet/persona/internal/storage"
	"github.com/kalambet/persona/internal/tracker"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the persona server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running persona server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stopServer()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show persona system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus()
	},
}

func pidFilePath(dataDir string) string {
	return filepath.Join(dataDir, "persona.pid")
}

func writePIDFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644)
}

func readPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func removePIDFile(path string) {
	os.Remove(path)
}

func runServer() error {
	fmt.Fprintf(os.Stderr, "persona version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize structured logging.
	logLevel := slog.LevelInfo
	if strings.EqualFold(cfg.Log.Level, "debug") {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	// Write PID file. Check if server is already running via health endpoint.
	pidPath := pidFilePath(cfg.Storage.DataDir)
	healthURL := fmt.Sprintf("http://127.0.0.1:%d/health", cfg.Server.Port)
	healthClient := &http.Client{Timeout: 2 * time.Second}
	if resp, err := healthClient.Get(healthURL); err == nil {
		resp.Body.Close()
		if pid, pidErr := readPIDFile(pidPath); pidErr == nil {
			printWarning("persona is already running (PID %d)", pid)
			return fmt.Errorf("server already running (PID %d)", pid)
		}
		printWarning("persona is already running on port %d", cfg.Server.Port)
		return fmt.Errorf("server already running on port %d", cfg.Server.Port)
	}
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer removePIDFile(pidPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open storage.
	db, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing storage: %v\n", err)
		}
	}()

	// Profile store; device facts arrive with the first POST /session.
	store := profile.NewStore(db, device.Facts{}, "")

	flushInterval, err := time.ParseDuration(cfg.Tracker.FlushInterval)
	if err != nil {
		slog.Warn("invalid tracker flush interval, using default 30s", "value", cfg.Tracker.FlushInterval, "error", err)
		flushInterval = 30 * time.Second
	}
	trk := tracker.New(store, flushInterval)

	adapter := content.New(cfg.Content.OwnerName, cfg.Content.StartYear)

	// Analytics events go to the local database, gated on consent.
	sink := analytics.ConsentGate(analytics.StoreSink{Store: db}, store.Consent)

	// Chat is optional: without an API key the endpoint reports 503.
	var chatter api.Chatter
	chatClient, err := chat.NewClient(ctx, cfg.Chat.GeminiAPIKey, cfg.Chat.Model)
	switch {
	case errors.Is(err, chat.ErrNoAPIKey):
		slog.Info("chat disabled: no Gemini API key configured")
	case err != nil:
		return fmt.Errorf("initializing chat client: %w", err)
	default:
		chatter = chatClient
	}

	handler := api.NewHandler(api.Deps{
		Store:           store,
		Tracker:         trk,
		Adapter:         adapter,
		Sink:            sink,
		Chat:            chatter,
		Events:          db,
		DefaultLanguage: cfg.Content.DefaultLanguage,
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		trk.Run(gctx)
		return nil
	})

	g.Go(func() error {
		fmt.Fprintf(os.Stderr, "persona listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		fmt.Fprintln(os.Stderr, "shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func stopServer() error {
	cfg, err := config.Load()
	if err != nil {
		printError("could not load config: %v", err)
		return err
	}

	pidPath := pidFilePath(cfg.Storage.DataDir)
	pid, err := readPIDFile(pidPath)
	if err != nil {
		printError("persona is not running (no PID file)")
		return fmt.Errorf("not running: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		printError("could not find process %d", pid)
		return err
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		printError("could not stop persona (PID %d): %v", pid, err)
		removePIDFile(pidPath)
		return err
	}

	printSuccess("Sent stop signal to persona (PID %d)", pid)
	return nil
}

func showStatus() error {
	cfg, err := config.Load()
	if err != nil {
		printError("config error: %v", err)
		return nil
	}

	serverURL := fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port)
	client := &http.Client{Timeout: 2 * time.Second}

	resp, err := client.Get(serverURL + "/health")
	running := false
	if err != nil {
		printStatus("Server", "stopped")
	} else {
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			running = true
			printStatus("Server", "running on port %d", cfg.Server.Port)
		} else {
			printStatus("Server", "error (HTTP %d)", resp.StatusCode)
		}
	}

	if running {
		profileResp, err := client.Get(serverURL + "/profile")
		if err == nil {
			var status struct {
				SessionID string `json:"sessionId"`
				Consent   bool   `json:"consent"`
				Profile   struct {
					Type   string `json:"type"`
					Source string `json:"source"`
					Intent string `json:"intent"`
				} `json:"profile"`
			}
			if decodeErr := decodeJSON(profileResp, &status); decodeErr == nil {
				printStatus("Session", "%s", status.SessionID)
				printStatus("Consent", "%t", status.Consent)
				printStatus("Visitor type", "%s", status.Profile.Type)
				printStatus("Source", "%s", status.Profile.Source)
				printStatus("Intent", "%s", status.Profile.Intent)
			}
		}
	}

	if cfg.Chat.GeminiAPIKey == "" {
		printStatus("Chat", "disabled (no API key)")
	} else {
		printStatus("Chat", "enabled (%s)", cfg.Chat.Model)
	}

	printStatus("Data dir", "%s", cfg.Storage.DataDir)
	return nil
}
