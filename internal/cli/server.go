package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"vidquiz-service/internal/app"
	"vidquiz-service/internal/config"
	"vidquiz-service/internal/genai"
	"vidquiz-service/internal/infra/filecache"
	"vidquiz-service/internal/infra/memory"
	"vidquiz-service/internal/infra/rediscache"
	"vidquiz-service/internal/source"
	transport "vidquiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz generation server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "3000"
	}

	apiKey := cfg.OpenAI.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		// Requests will be rejected with a configuration error until an
		// operator supplies a key; the server still starts.
		log.Printf("warning: no OpenAI API key configured")
	}

	genTimeout := config.Duration(cfg.OpenAI.Timeout, 4*time.Minute)
	generator := genai.New(genai.Config{
		APIKey:  apiKey,
		Model:   cfg.OpenAI.Model,
		Timeout: genTimeout,
	})

	cache := newCacheStore(cfg)
	strategies, defaultStrategy := newStrategies(cfg, generator, cache)
	service := app.NewQuizService(cache, strategies, defaultStrategy, generator)

	quizHandler := transport.NewQuizHandler(service)
	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/generate-quiz", quizHandler.GenerateQuiz)
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:        ":" + finalPort,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		// Generation holds the response open for the length of a backend
		// call, so the write ceiling sits above the generation timeout.
		WriteTimeout: genTimeout + 30*time.Second,
	}

	go func() {
		log.Printf("starting vidquiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newCacheStore picks the cache backend: Redis when an address is
// configured, flat files when a directory is, in-memory otherwise.
func newCacheStore(cfg config.Config) app.CacheStore {
	if cfg.Cache.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		return rediscache.NewStore(client, config.Duration(cfg.Cache.Redis.TTL, 0))
	}
	if cfg.Cache.Dir != "" {
		return filecache.New(cfg.Cache.Dir)
	}
	log.Printf("no cache backend configured, quizzes will not survive restarts")
	return memory.NewStore()
}

// newStrategies wires up every source strategy the configuration allows and
// picks the default: captions when a captions endpoint exists, otherwise
// the direct media reference.
func newStrategies(cfg config.Config, generator *genai.Client, cache app.CacheStore) (map[string]app.SourceStrategy, string) {
	strategies := map[string]app.SourceStrategy{
		"direct": source.NewDirectStrategy(cfg.Source.WatchURL),
	}
	if cfg.Source.CaptionsURL != "" {
		strategies["captions"] = source.NewCaptionsStrategy(cfg.Source.CaptionsURL, cache)
	}
	if cfg.Source.MediaURL != "" {
		strategies["transcribe"] = source.NewTranscribeStrategy(
			source.NewHTTPAudioDownloader(cfg.Source.MediaURL), generator, cache)
	}

	def := cfg.Source.Strategy
	if _, ok := strategies[def]; !ok {
		if _, ok := strategies["captions"]; ok {
			def = "captions"
		} else {
			def = "direct"
		}
	}
	return strategies, def
}
