// Command geminikey stores the Gemini API key into the blob store, which is
// what flips the "key selected" capability flag the image endpoints gate on.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"ngonexus/internal/credentials"
	"ngonexus/internal/infra"
	"ngonexus/internal/store"
)

func main() {
	var (
		keyFlag   string
		clearFlag bool
	)
	flag.StringVar(&keyFlag, "key", "", "Gemini API key (falls back to GEMINI_API_KEY)")
	flag.BoolVar(&clearFlag, "clear", false, "remove the stored key instead of setting one")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := infra.NewLogger("cli").With().Str("cmd", "geminikey").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var kv store.Store
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to connect database: %v\n", err)
			os.Exit(1)
		}
		defer pool.Close()
		kv = store.NewPGStore(infra.NewSQLRunner(pool, logger))
	} else {
		fs, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open data dir: %v\n", err)
			os.Exit(1)
		}
		kv = fs
	}

	creds := credentials.NewStore(kv)

	if clearFlag {
		if err := creds.Clear(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "failed to clear key: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Gemini API key cleared")
		return
	}

	key := strings.TrimSpace(keyFlag)
	if key == "" {
		key = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
	if key == "" {
		fmt.Fprintln(os.Stderr, "a Gemini API key is required via -key or GEMINI_API_KEY")
		os.Exit(1)
	}
	if err := creds.SetGeminiAPIKey(ctx, key); err != nil {
		fmt.Fprintf(os.Stderr, "failed to persist key: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Gemini API key stored successfully")
}
