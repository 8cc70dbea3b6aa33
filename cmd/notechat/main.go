package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"notechat/internal/chunker"
	"notechat/internal/config"
	"notechat/internal/embedding"
	"notechat/internal/engine"
	"notechat/internal/llm"
	"notechat/internal/loader"
	"notechat/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, notesDir string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/notechat/config.yaml if not provided)")
	flag.StringVar(&notesDir, "notes", "course_notes", "Directory containing course notes")
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
		fmt.Println("Get a free API key from: https://console.groq.com/")
		fmt.Println("\nYou can set it by creating a .env file with:")
		fmt.Printf("%s=your_api_key_here\n", cfg.LLM.APIKeyEnv)
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
	if err := eng.Build(context.Background()); err != nil {
		log.Fatalf("index build failed: %v", err)
	}

	m := tui.New(eng)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
