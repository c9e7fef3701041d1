package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/nstehr/hive/hive-core/journal"
	"github.com/nstehr/hive/hive-core/rules"
	"github.com/nstehr/hive/hive-core/trace"
)

const banner = `
██╗  ██╗██╗██╗   ██╗███████╗
██║  ██║██║██║   ██║██╔════╝
███████║██║██║   ██║█████╗
██╔══██║██║╚██╗ ██╔╝██╔══╝
██║  ██║██║ ╚████╔╝ ███████╗
╚═╝  ╚═╝╚═╝  ╚═══╝  ╚══════╝

Drone Swarm Decision Core`

func main() {
	var (
		configPath  = flag.String("config", "", "YAML policy config (defaults if empty)")
		journalPath = flag.String("journal", "", "SQLite decision journal to summarize")
		tracePath   = flag.String("trace", "", "zstd JSONL trace file to import into -journal")
		logLevel    = flag.String("log-level", "info", "debug, info, warn or error")
	)
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	fmt.Println(banner)

	if err := run(*configPath, *journalPath, *tracePath); err != nil {
		slog.Error("hive-core failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, journalPath, tracePath string) error {
	cfg := rules.DefaultConfig()
	if configPath != "" {
		loaded, err := rules.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	engine, err := rules.NewPolicyEngine(cfg)
	if err != nil {
		return fmt.Errorf("compile policy: %w", err)
	}
	printPolicy(cfg, engine)

	if journalPath == "" {
		if tracePath != "" {
			return fmt.Errorf("-trace needs -journal to import into")
		}
		return nil
	}

	j, err := journal.Open(journalPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	if tracePath != "" {
		recs, err := trace.ReadFile(tracePath)
		if err != nil {
			return fmt.Errorf("read trace: %w", err)
		}
		for _, rec := range recs {
			if err := j.RecordTick(rec); err != nil {
				return fmt.Errorf("import tick %d: %w", rec.Tick, err)
			}
		}
		slog.Info("trace imported", "path", tracePath, "ticks", len(recs))
	}

	ctx := context.Background()
	behaviors, err := j.BehaviorCounts(ctx)
	if err != nil {
		return fmt.Errorf("behavior counts: %w", err)
	}
	evictions, err := j.EvictionCounts(ctx)
	if err != nil {
		return fmt.Errorf("eviction counts: %w", err)
	}
	printCounts("behaviors", behaviors)
	printCounts("evictions", evictions)
	return nil
}

func printPolicy(cfg rules.Config, engine *rules.Engine) {
	fmt.Printf("\npersonal space %d, juggernaut %d\n", cfg.PersonalSpace, cfg.Juggernaut)
	for _, r := range engine.Rules() {
		guard := r.GuardSrc
		if guard == "" {
			guard = "-"
		}
		fmt.Printf("  %4d  %-11s  guard: %s\n", r.Priority, r.Name, guard)
	}
}

func printCounts(title string, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Printf("\n%s:\n", title)
	for _, k := range keys {
		fmt.Printf("  %-12s %d\n", k, counts[k])
	}
}
