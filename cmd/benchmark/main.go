package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/olgasafonova/whatsonchain-mcp-server/woc"
)

// newStubServer answers every request after a fixed delay, standing in for
// the network round trip
func newStubServer(latency time.Duration) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(latency)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"chain":"main","blocks":800000,"headers":800000}`))
	}))
}

func newClient(baseURL string, opts ...woc.Option) *woc.Client {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	opts = append([]woc.Option{woc.WithLogger(logger)}, opts...)
	if baseURL != "" {
		opts = append(opts, woc.WithBaseURL(baseURL))
	}
	return woc.New("main", opts...)
}

// measureCachePerformance compares a network call with the cached repeat
func measureCachePerformance(baseURL string) {
	client := newClient(baseURL, woc.WithAPIKey("benchmark"))
	defer client.Close()
	ctx := context.Background()

	fmt.Println("=== Cache Performance Test ===")
	fmt.Println()
	fmt.Println("1. ChainInfo Cache Test:")

	start := time.Now()
	if _, err := client.ChainInfo(ctx); err != nil {
		fmt.Printf("   Error: %v\n", err)
		return
	}
	firstCall := time.Since(start)
	fmt.Printf("   First call (network):  %v\n", firstCall)

	start = time.Now()
	_, _ = client.ChainInfo(ctx)
	secondCall := time.Since(start)
	fmt.Printf("   Second call (cached):  %v\n", secondCall)
	fmt.Printf("   Speedup: %.0fx faster\n", float64(firstCall)/float64(max(secondCall, time.Nanosecond)))
	fmt.Println()

	uncached := newClient(baseURL, woc.WithAPIKey("benchmark"), woc.WithCache(false))
	defer uncached.Close()

	fmt.Println("2. ChainInfo with cache disabled (baseline):")
	start = time.Now()
	for range 3 {
		_, _ = uncached.ChainInfo(ctx)
	}
	fmt.Printf("   3 calls: %v\n", time.Since(start))
	fmt.Println()
}

// measureThrottle shows the request spacing applied without an API key
func measureThrottle(baseURL string, calls int) {
	ctx := context.Background()

	fmt.Println("=== Throttle Spacing ===")
	fmt.Println()

	for _, tc := range []struct {
		label string
		opts  []woc.Option
	}{
		{"3. Without API key (throttled):", nil},
		{"4. With API key (unthrottled):", []woc.Option{woc.WithAPIKey("benchmark")}},
	} {
		client := newClient(baseURL, append(tc.opts, woc.WithCache(false))...)

		fmt.Println(tc.label)
		var wg sync.WaitGroup
		start := time.Now()
		for range calls {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = client.ChainInfo(ctx)
			}()
		}
		wg.Wait()
		elapsed := time.Since(start)
		client.Close()

		fmt.Printf("   %d concurrent calls: %v\n", calls, elapsed)
		fmt.Printf("   Effective rate: %.1f req/s\n", float64(calls)/elapsed.Seconds())
		fmt.Println()
	}
}

func main() {
	live := flag.Bool("live", false, "measure against api.whatsonchain.com instead of a local stub")
	latency := flag.Duration("latency", 80*time.Millisecond, "simulated round trip of the local stub")
	calls := flag.Int("calls", 10, "requests per throttle measurement")
	flag.Parse()

	fmt.Println("WhatsOnChain MCP Server - Performance Measurements")
	fmt.Println("==================================================")
	fmt.Println()

	var baseURL string
	if !*live {
		stub := newStubServer(*latency)
		defer stub.Close()
		baseURL = stub.URL + "/v1/bsv/main/"
		fmt.Printf("Using local stub with %v latency\n\n", *latency)
	}

	measureCachePerformance(baseURL)
	measureThrottle(baseURL, *calls)

	fmt.Println("=== Summary ===")
	fmt.Println()
	fmt.Println("Key behaviors:")
	fmt.Println("• Caching: repeated GETs are served from memory for the process lifetime")
	fmt.Println("• Throttle: without an API key dispatches are spaced to 3 per second")
	fmt.Println("• Coalescing: identical concurrent GETs share one upstream request")
}
