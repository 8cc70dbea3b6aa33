package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"notechat/internal/chunker"
	"notechat/internal/config"
	"notechat/internal/embedding"
	"notechat/internal/engine"
	"notechat/internal/llm"
	"notechat/internal/loader"
	"notechat/internal/report"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, notesDir, outDir string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional)")
	flag.StringVar(&notesDir, "notes", "course_notes", "Directory containing course notes")
	flag.StringVar(&outDir, "out", ".", "Directory to write the transcript and demo report")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if os.Getenv(cfg.LLM.APIKeyEnv) == "" {
		fmt.Printf("Please set your %s environment variable.\n", cfg.LLM.APIKeyEnv)
		return
	}

	emb, err := embedding.NewClient(cfg.Embedder)
	if err != nil {
		log.Fatalf("embedder init failed: %v", err)
	}
	chat, err := llm.NewClient(cfg.LLM)
	if err != nil {
		log.Fatalf("llm init failed: %v", err)
	}
	ch := chunker.NewWindowChunker(cfg.Chunker.ChunkSize, cfg.Chunker.ChunkOverlap)

	eng := engine.New(loader.New(), ch, emb, chat, notesDir, cfg.Retrieval.TopK)
	ctx := context.Background()
	if err := eng.Build(ctx); err != nil {
		log.Fatalf("index build failed: %v", err)
	}

	now := time.Now()
	results := report.Run(ctx, eng, report.DefaultQueries)

	transcript, err := report.WriteTranscript(outDir, results, now)
	if err != nil {
		log.Fatalf("failed to write transcript: %v", err)
	}
	demo, err := report.WriteDemoReport(outDir, results, now)
	if err != nil {
		log.Fatalf("failed to write demo report: %v", err)
	}

	successful := 0
	for _, r := range results {
		if r.OK {
			successful++
		}
	}
	fmt.Printf("\nSuccessful: %d/%d\n", successful, len(results))
	fmt.Printf("Failed: %d/%d\n", len(results)-successful, len(results))
	fmt.Printf("Success Rate: %.1f%%\n", report.SuccessRate(results))
	fmt.Printf("Results saved to: %s\n", transcript)
	fmt.Printf("Demo report saved to: %s\n", demo)
}
