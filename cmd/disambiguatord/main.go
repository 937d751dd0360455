// Command disambiguatord serves the Spanish semantic disambiguation
// engine over HTTP, configured from an optional YAML file.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nl-sre/semantico/engine"
	"github.com/nl-sre/semantico/httpapi"
	"github.com/nl-sre/semantico/internal/config"
	"github.com/nl-sre/semantico/lexicon"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file (optional)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		f, err := os.Open(*configPath)
		if err != nil {
			log.Fatalf("disambiguatord: failed to open config: %v", err)
		}
		cfg, err = config.Load(f)
		f.Close()
		if err != nil {
			log.Fatalf("disambiguatord: failed to load config: %v", err)
		}
	}

	words := lexicon.DefaultLexicon()
	semantic := lexicon.DefaultSemanticDB()
	d := engine.New(words, semantic, cfg.EngineConfig())

	srv, wg, port := httpapi.RunServer(d, cfg.ListenAddr)
	log.Printf("disambiguatord: listening on port %s", port)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpapi.Shutdown(ctx, srv); err != nil {
		log.Printf("disambiguatord: shutdown error: %v", err)
	}
	wg.Wait()
}
