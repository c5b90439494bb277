package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/vietddude/namecheck/internal/core/domain"
	"github.com/vietddude/namecheck/internal/infra/rpc"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}

	baseURL := os.Getenv("NAMECHECK_URL")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}

	ctx := context.Background()

	// 1. Create provider
	provider := rpc.NewHTTPProvider("local", 10*time.Second)

	// 2. Shorter retry policy than the default so the demo stays snappy
	retry := rpc.DefaultRetryConfig
	retry.MaxAttempts = 3
	retry.Delay = time.Second
	retry.OnRetry = func(attempt int, err error, delay time.Duration) {
		fmt.Printf("🔄 Attempt %d failed (%v), retrying in %v\n", attempt, err, delay)
	}

	// 3. Create client
	client := rpc.NewClient(baseURL, provider, retry)
	defer client.Close()

	fmt.Printf("=== Checking user names against %s ===\n\n", baseURL)

	// 4. Check a few names, including one the server rejects
	for _, name := range []string{"peterfriese", "sjobs", "ab"} {
		available, err := client.CheckUserNameAvailable(ctx, name)
		var apiErr *domain.APIError
		switch {
		case errors.As(err, &apiErr) && apiErr.Kind == domain.KindValidation:
			fmt.Printf("%-12s rejected: %s\n", name, apiErr.Reason)
		case err != nil:
			fmt.Printf("%-12s failed: %v\n", name, err)
		case available:
			fmt.Printf("%-12s available\n", name)
		default:
			fmt.Printf("%-12s taken\n", name)
		}
	}

	fmt.Println()

	// 5. Show provider health
	health := client.GetHealth()
	fmt.Println("=== Provider Health ===")
	fmt.Printf("  Available:   %v\n", health.Available)
	fmt.Printf("  Error rate:  %.2f\n", health.ErrorRate)
	fmt.Printf("  Avg latency: %v\n", health.Latency)
	if stats := health.MonitorStats; stats != nil {
		fmt.Printf("  Status:      %s\n", stats.Status)
		fmt.Printf("  5xx seen:    %d\n", stats.ServerErrorCount)
		if stats.LastRetryAfter != "" {
			fmt.Printf("  Retry-After: %s\n", stats.LastRetryAfter)
		}
	}
}
