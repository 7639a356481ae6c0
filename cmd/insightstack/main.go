// Package main is the Insight Stack CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/insightstack/insightstack/internal/config"
	"github.com/insightstack/insightstack/internal/favorites"
	"github.com/insightstack/insightstack/internal/models"
	"github.com/insightstack/insightstack/internal/search"
	"github.com/insightstack/insightstack/internal/server"
	"github.com/insightstack/insightstack/internal/store"
	"github.com/insightstack/insightstack/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/insightstack/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "stacks":
		runStacks()
	case "seed":
		runSeed()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("insightstack version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := store.NewMongoStore(ctx, cfg.Storage.MongoURI, cfg.Storage.Database, cfg.Storage.Collection)
	cancel()
	if err != nil {
		logger.Fatal("Failed to connect to storage", zap.Error(err))
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		_ = st.Close(closeCtx)
	}()

	fav, err := favorites.NewStore(cfg.Storage.FavoritesPath)
	if err != nil {
		logger.Fatal("Failed to open favorites database", zap.Error(err))
	}
	defer fav.Close()

	engine := search.NewEngine(st, cfg.Search)
	srv := server.NewServer(engine, st, fav, &cfg.Server, cfg.Search, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
}

// buildSearchQuery joins all positional args with spaces so multi-word
// queries work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the
// query to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage when server is not running)")
	limit := fs.Int("limit", 10, "number of results")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(searchArgs)

	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		fmt.Println("Usage: insightstack search [flags] <query>")
		os.Exit(1)
	}

	var response models.SearchResponse
	if *serverURL != "" {
		res, err := searchViaHTTP(*serverURL, queryStr, *limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		response = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		st, engine, err := initEngine(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer closeStore(st)

		start := time.Now()
		results, err := engine.Search(context.Background(), queryStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		response = models.SearchResponse{
			Results:   results,
			Total:     len(results),
			Query:     queryStr,
			QueryTime: time.Since(start).Milliseconds(),
		}
		if *limit > 0 && *limit < len(response.Results) {
			response.Results = response.Results[:*limit]
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(response); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("%d result(s) for %q in %dms\n\n", response.Total, response.Query, response.QueryTime)
		for i, res := range response.Results {
			fmt.Printf("%2d. [%.2f] %s - %s (%d insights)\n",
				i+1, res.Score, res.Item.PodcastName, res.Item.EpisodeTitle, res.Item.InsightCount)
			for _, m := range res.Matches {
				fmt.Printf("      %s: %q (%.2f)\n", m.Field, m.Text, m.Score)
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func searchViaHTTP(serverURL, query string, limit int) (*models.SearchResponse, error) {
	u := fmt.Sprintf("%s/api/v1/search?q=%s&limit=%d", serverURL, url.QueryEscape(query), limit)
	resp, err := http.Get(u)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runStacks() {
	fs := flag.NewFlagSet("stacks", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage)")
	channelID := fs.String("channel", "", "filter by channel ID")
	categoryFilter := fs.String("category", "", "filter by category")
	tags := fs.String("tags", "", "comma-separated tag filter")
	sortKey := fs.String("sort", "newest", "sort order: newest, oldest, trending, popular")
	limit := fs.Int("limit", 0, "page size (0 = configured default)")
	offset := fs.Int("offset", 0, "page offset")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var response models.StackListResponse
	if *serverURL != "" {
		params := url.Values{}
		params.Set("channel", *channelID)
		params.Set("category", *categoryFilter)
		params.Set("tags", *tags)
		params.Set("sort", *sortKey)
		params.Set("limit", fmt.Sprint(*limit))
		params.Set("offset", fmt.Sprint(*offset))
		resp, err := http.Get(*serverURL + "/api/v1/stacks?" + params.Encode())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Fprintf(os.Stderr, "Server returned %d: %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
			fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		st, engine, err := initEngine(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer closeStore(st)

		res, err := engine.ListStacks(context.Background(), &models.StackQuery{
			ChannelID: *channelID,
			Category:  *categoryFilter,
			Tags:      *tags,
			Sort:      *sortKey,
			Limit:     *limit,
			Offset:    *offset,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "List stacks failed: %v\n", err)
			os.Exit(1)
		}
		response = *res
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(response); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("%d stack(s), showing %d\n\n", response.Total, len(response.Data))
		for i, st := range response.Data {
			fmt.Printf("%2d. %s - %s (%d insights)\n", i+1, st.PodcastName, st.EpisodeTitle, st.InsightCount)
			if len(st.Categories) > 0 {
				fmt.Printf("      categories: %s\n", strings.Join(st.Categories, ", "))
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	resp, err := http.Get(*serverURL + "/api/v1/status")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Server returned %d: %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var status map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
		os.Exit(1)
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("insights:     %v\n", status["insights"])
		fmt.Printf("favorites:    %v\n", status["favorites"])
		fmt.Printf("cached_sets:  %v\n", status["cached_sets"])
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func runSeed() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	st, err := store.NewMongoStore(ctx, cfg.Storage.MongoURI, cfg.Storage.Database, cfg.Storage.Collection)
	if err != nil {
		fmt.Printf("Failed to connect to storage: %v\n", err)
		os.Exit(1)
	}
	defer closeStore(st)

	insights := seedInsights()
	if err := st.InsertInsights(ctx, insights); err != nil {
		fmt.Printf("Seeding failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Seeded %d insight(s)\n", len(insights))
}

// seedInsights builds a small demo data set spanning a few channels and
// episodes so stacks, search, and suggestions have something to chew on.
func seedInsights() []*models.Insight {
	type episode struct {
		channelID string
		podcast   string
		title     string
		thumbnail string
	}
	episodes := []episode{
		{"UCyaN6mg5u8Cjy2ZI4ikWaug", "My First Million", "Building a SaaS in Public", "https://i.ytimg.com/vi/mfm001/hq720.jpg"},
		{"UCyaN6mg5u8Cjy2ZI4ikWaug", "My First Million", "Cold Email Playbooks That Work", "https://i.ytimg.com/vi/mfm002/hq720.jpg"},
		{"UC9cn0TuPq4dnbTY-CBsm8XA", "a16z", "The State of AI Agents", "https://i.ytimg.com/vi/a16z001/hq720.jpg"},
		{"UCPjNBjflYl0-HQtUvOx0Ibw", "Greg Isenberg", "Ideas Worth Stealing This Year", "https://i.ytimg.com/vi/gi001/hq720.jpg"},
	}
	type seed struct {
		episode  int
		title    string
		problem  string
		category string
		tags     []string
	}
	seeds := []seed{
		{0, "Charge for the outcome, not the hours", "Founders underprice early products", "saas", []string{"pricing", "saas"}},
		{0, "Ship a landing page before the product", "Building features nobody validated", "startup", []string{"validation", "marketing"}},
		{1, "Personalize the first line only", "Cold emails read like mass blasts", "marketing", []string{"cold email", "sales"}},
		{1, "Follow up three times, then stop", "Single-touch outreach gets ignored", "marketing", []string{"cold email", "outreach"}},
		{2, "Agents need narrow, measurable tasks", "General-purpose agents fail silently", "ai", []string{"ai", "agents"}},
		{2, "Own the evaluation loop", "Teams ship models they cannot measure", "ai", []string{"ai", "evals"}},
		{3, "Niche communities beat broad audiences", "Creators chase follower counts", "content", []string{"community", "audience"}},
	}

	now := time.Now()
	insights := make([]*models.Insight, 0, len(seeds))
	for i, s := range seeds {
		ep := episodes[s.episode]
		insights = append(insights, &models.Insight{
			ID:               uuid.NewString(),
			ChannelID:        ep.channelID,
			InsightType:      "product_idea",
			Title:            s.title,
			ProblemAddressed: s.problem,
			Description:      fmt.Sprintf("From %q: %s.", ep.title, s.title),
			Category:         s.category,
			Tags:             s.tags,
			SourceContext: models.SourceContext{
				PodcastName:  ep.podcast,
				EpisodeTitle: ep.title,
			},
			ThumbnailURL: ep.thumbnail,
			CreatedAt:    now.Add(-time.Duration(i) * time.Hour),
		})
	}
	return insights
}

func initEngine(cfg *config.Config) (store.Store, *search.Engine, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	st, err := store.NewMongoStore(ctx, cfg.Storage.MongoURI, cfg.Storage.Database, cfg.Storage.Collection)
	if err != nil {
		return nil, nil, err
	}
	return st, search.NewEngine(st, cfg.Search), nil
}

func closeStore(st store.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = st.Close(ctx)
}

func printUsage() {
	fmt.Println(`insightstack - Podcast insight browsing and search server

Usage:
  insightstack server [flags]           Start the HTTP server
  insightstack search [flags] <query>   Search podcast stacks
  insightstack stacks [flags]           List podcast stacks
  insightstack seed [flags]             Insert demo insights into storage
  insightstack status [flags]           Show server status
  insightstack version                  Show version
  insightstack help                     Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/insightstack/config.yaml)
  --debug            Enable debug logging

Search Flags:
  --config string    Config file path (for direct storage mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") for direct storage.
  --limit int        Number of results (default: 10)
  --output string    Output format: text or json (default: text)

Stacks Flags:
  --channel string   Filter by channel ID
  --category string  Filter by category
  --tags string      Comma-separated tag filter (any tag matches)
  --sort string      Sort order: newest, oldest, trending, popular (default: newest)
  --limit int        Page size
  --offset int       Page offset
  --output string    Output format: text or json (default: text)

Examples:
  insightstack server
  insightstack search "cold email"
  insightstack search --output json pricing
  insightstack stacks --channel UCyaN6mg5u8Cjy2ZI4ikWaug --sort trending
  insightstack seed
  insightstack status`)
}
