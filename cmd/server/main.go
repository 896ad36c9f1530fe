package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github-repo-search/internal/api"
	"github-repo-search/internal/elastic"
	"github-repo-search/internal/github"
	"github-repo-search/internal/llm"
	"github-repo-search/internal/search"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Could not load .env, using system environment variables.")
	}

	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		log.Println("⚠️ GOOGLE_API_KEY not set, natural-language queries will fall back to defaults.")
	}
	resolver := llm.NewResolver(llm.NewClient(llm.Config{APIKey: apiKey}))

	gh, err := github.NewClient(github.Config{Token: os.Getenv("GITHUB_TOKEN")})
	if err != nil {
		log.Fatalf("❌ Failed to create GitHub client: %v", err)
	}

	var recorder search.Recorder
	var history *elastic.Client
	if addr := os.Getenv("ES_URL"); addr != "" {
		es, err := elastic.NewClient(elastic.Config{
			Addresses: []string{addr},
			Username:  os.Getenv("ES_USER"),
			Password:  os.Getenv("ES_PASSWORD"),
			Index:     os.Getenv("ES_INDEX"),
		})
		if err != nil {
			log.Fatalf("❌ Failed to create Elasticsearch client: %v", err)
		}
		log.Println("✅ Elasticsearch history index enabled")
		recorder = es
		history = es
	}

	svc := search.NewService(resolver, gh, recorder)

	http.HandleFunc("/api/search/nlp", api.Wrap(api.NLPSearchHandler(svc)))
	http.HandleFunc("/api/search/manual", api.Wrap(api.ManualSearchHandler(svc)))
	http.HandleFunc("/api/search/history", api.Wrap(api.HistorySearchHandler(history)))
	http.Handle("/", http.FileServer(http.Dir("static")))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running at http://localhost:%s", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}
