package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	apimodel "project_finance/pkg/api/model"
)

// Config is the API server configuration, read from config/server.yaml.
type Config struct {
	Addr string `yaml:"addr"`
}

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := Config{Addr: ":8080"}
	if data, err := os.ReadFile("config/server.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			fmt.Printf("[WARNING] Failed to parse config/server.yaml: %v\n", err)
		}
	}

	handler := apimodel.NewHandler()
	http.HandleFunc("/api/model/run", handler.HandleRun)
	http.HandleFunc("/api/model/runs", handler.HandleRuns)
	http.HandleFunc("/api/model/report", handler.HandleReport)

	fmt.Printf("API server starting on %s...\n", cfg.Addr)
	fmt.Println("  - POST /api/model/run     (scenario JSON -> full results)")
	fmt.Println("  - GET  /api/model/runs    (run registry listing)")
	fmt.Println("  - GET  /api/model/report  (?run=<id>&format=markdown|html)")

	if err := http.ListenAndServe(cfg.Addr, nil); err != nil {
		log.Fatalf("Error: server failed to start: %v", err)
	}
}
