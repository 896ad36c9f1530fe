package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github-repo-search/internal/github"
	"github-repo-search/internal/llm"
	"github-repo-search/internal/query"
	"github-repo-search/internal/search"
)

func main() {
	app := &cli.App{
		Name:      "repo-search",
		Usage:     "search GitHub repositories with natural language",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "page",
				Value: 1,
				Usage: "result page to fetch",
			},
		},
		Action: func(c *cli.Context) error {
			if err := godotenv.Load(); err != nil {
				log.Println("⚠️ Could not load .env, using system environment variables.")
			}

			svc, err := newService()
			if err != nil {
				return err
			}

			if c.Args().Len() > 0 {
				return runOnce(svc, strings.Join(c.Args().Slice(), " "), c.Int("page"))
			}
			return runInteractive(svc)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func newService() (*search.Service, error) {
	resolver := llm.NewResolver(llm.NewClient(llm.Config{APIKey: os.Getenv("GOOGLE_API_KEY")}))

	gh, err := github.NewClient(github.Config{Token: os.Getenv("GITHUB_TOKEN")})
	if err != nil {
		return nil, fmt.Errorf("creating GitHub client: %w", err)
	}

	return search.NewService(resolver, gh, nil), nil
}

func runOnce(svc *search.Service, text string, page int) error {
	fmt.Printf("💬 Query: %q\n", text)

	result, err := svc.SearchNatural(context.Background(), text, page)
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

func runInteractive(svc *search.Service) error {
	fmt.Println("🔍 GitHub Repository Search — type 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("🔎 Search: ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" || line == "q" {
			break
		}

		if err := runOnce(svc, line, 1); err != nil {
			fmt.Printf("❌ %v\n", err)
		}
		fmt.Println(strings.Repeat("-", 70))
	}
	return scanner.Err()
}

func printResult(result *search.Result) {
	fmt.Printf("🔍 GitHub query: %s\n", query.Compile(result.Filters))
	fmt.Printf("✅ Found %d repositories\n\n", result.Results.TotalCount)

	if len(result.Results.Items) == 0 {
		fmt.Println("⚠️ No results. Try a different query.")
		return
	}

	for i, repo := range result.Results.Items {
		fmt.Printf("%d. %s (%d ⭐)\n", i+1, repo.FullName, repo.Stars)
		fmt.Printf("   %s\n", repo.URL)
		if repo.Description != "" {
			fmt.Printf("   %s\n", repo.Description)
		}
		if len(repo.Topics) > 0 {
			topics := repo.Topics
			if len(topics) > 5 {
				topics = topics[:5]
			}
			fmt.Printf("   🏷️  %s\n", strings.Join(topics, ", "))
		}
		fmt.Println()
	}
}
