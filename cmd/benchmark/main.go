package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
)

type commentResponse struct {
	CommentedCode string `json:"commentedCode"`
}

type result struct {
	Sample   string
	Chars    int
	Lang     string
	Run      int
	WallMs   int64
	OutChars int
	Error    string
}

func main() {
	url := flag.String("url", "http://localhost:5001", "API base URL")
	runs := flag.Int("runs", 3, "Number of runs per sample")
	lang := flag.String("lang", "English", "Target language for the comments")
	quality := flag.Bool("quality", false, "Quality mode: show input/output for each sample (1 run, no timing table)")
	jsonOut := flag.String("json", "", "Write results to JSON file (e.g. results.json)")
	warmup := flag.Bool("warmup", false, "Run one warmup request per sample before measuring")
	flag.Parse()

	baseURL := strings.TrimRight(*url, "/")
	client := &http.Client{Timeout: 180 * time.Second}

	provider := discoverProvider(client, baseURL)

	if *quality {
		runQualityMode(client, baseURL, provider, *lang)
		return
	}

	fmt.Printf("Benchmarking against %s using provider: %s (%d runs per sample", baseURL, provider, *runs)
	if *warmup {
		fmt.Print(", warmup enabled")
	}
	fmt.Println(")")

	var results []result
	var failures int
	for _, sample := range Samples {
		if *warmup {
			fmt.Printf("  Warming up %s...", sample.Name)
			w := benchmark(client, baseURL, *lang, sample, 0)
			if w.Error != "" {
				fmt.Printf(" FAILED (%s)\n", w.Error)
			} else {
				fmt.Printf(" %dms (discarded)\n", w.WallMs)
			}
		}
		for run := 1; run <= *runs; run++ {
			fmt.Printf("  Running %s (run %d/%d)...", sample.Name, run, *runs)
			r := benchmark(client, baseURL, *lang, sample, run)
			results = append(results, r)
			if r.Error != "" {
				fmt.Printf(" FAILED (%s)\n", r.Error)
				failures++
			} else {
				fmt.Printf(" %dms\n", r.WallMs)
			}
		}
	}

	fmt.Println()
	printTable(results)
	printSummary(results)

	if *jsonOut != "" {
		if err := writeJSON(*jsonOut, results, baseURL, provider); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
		} else {
			fmt.Printf("\nResults written to %s\n", *jsonOut)
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
}

// discoverProvider asks /api/health which provider the server uses and
// exits early when it is not configured.
func discoverProvider(client *http.Client, baseURL string) string {
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching health: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Health endpoint returned %d: %s\n", resp.StatusCode, body)
		os.Exit(1)
	}

	var health struct {
		Provider struct {
			Name       string `json:"name"`
			Configured bool   `json:"configured"`
			Reason     string `json:"reason"`
		} `json:"provider"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding health: %v\n", err)
		os.Exit(1)
	}
	if !health.Provider.Configured {
		fmt.Fprintf(os.Stderr, "Provider %s is not configured: %s\n", health.Provider.Name, health.Provider.Reason)
		os.Exit(1)
	}
	return health.Provider.Name
}

// postComment uploads one sample and returns the decoded reply.
func postComment(client *http.Client, baseURL, lang string, sample Sample) (commentResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", sample.Filename)
	if err != nil {
		return commentResponse{}, err
	}
	if _, err := io.WriteString(fw, sample.Code); err != nil {
		return commentResponse{}, err
	}
	if err := mw.WriteField("targetLang", lang); err != nil {
		return commentResponse{}, err
	}
	if err := mw.Close(); err != nil {
		return commentResponse{}, err
	}

	resp, err := client.Post(baseURL+"/api/comment", mw.FormDataContentType(), &buf)
	if err != nil {
		return commentResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return commentResponse{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var cr commentResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return commentResponse{}, err
	}
	return cr, nil
}

func benchmark(client *http.Client, baseURL, lang string, sample Sample, run int) result {
	r := result{Sample: sample.Name, Chars: len(sample.Code), Lang: lang, Run: run}

	start := time.Now()
	cr, err := postComment(client, baseURL, lang, sample)
	r.WallMs = time.Since(start).Milliseconds()
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.OutChars = len(cr.CommentedCode)
	return r
}

func printTable(results []result) {
	fmt.Println("| Sample | Chars | Lang | Run | Wall (ms) | Out Chars | Ratio |")
	fmt.Println("|--------|-------|------|-----|-----------|-----------|-------|")
	for _, r := range results {
		if r.Error != "" {
			fmt.Printf("| %-6s | %5d | %-10s | %d | %9s | %9s | %5s |\n",
				r.Sample, r.Chars, r.Lang, r.Run, "FAIL", "-", "-")
			continue
		}
		ratio := float64(r.OutChars) / float64(r.Chars)
		fmt.Printf("| %-6s | %5d | %-10s | %d | %9d | %9d | %5.2f |\n",
			r.Sample, r.Chars, r.Lang, r.Run, r.WallMs, r.OutChars, ratio)
	}
}

func runQualityMode(client *http.Client, baseURL, provider, lang string) {
	fmt.Printf("Quality test against %s using provider: %s\n", baseURL, provider)
	fmt.Println(strings.Repeat("=", 72))

	var failures int
	for i, sample := range QualitySamples {
		fmt.Printf("\n--- %d/%d: %s (%s, %d chars) ---\n", i+1, len(QualitySamples), sample.Name, sample.Filename, len(sample.Code))
		fmt.Printf("IN:\n%s\n", sample.Code)

		start := time.Now()
		cr, err := postComment(client, baseURL, lang, sample)
		if err != nil {
			fmt.Printf("ERR: %s\n", err)
			failures++
			continue
		}

		fmt.Printf("OUT:\n%s\n", cr.CommentedCode)
		fmt.Printf("     [%dms, %d->%d chars]\n", time.Since(start).Milliseconds(), len(sample.Code), len(cr.CommentedCode))
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 72))
	fmt.Printf("Done: %d/%d passed\n", len(QualitySamples)-failures, len(QualitySamples))
	if failures > 0 {
		os.Exit(1)
	}
}

func printSummary(results []result) {
	ok := lo.Filter(results, func(r result, _ int) bool { return r.Error == "" })
	failed := len(results) - len(ok)

	if len(ok) == 0 {
		fmt.Printf("\nSummary: all %d runs failed\n", len(results))
		return
	}

	totalWall := lo.SumBy(ok, func(r result) int64 { return r.WallMs })
	totalChars := lo.SumBy(ok, func(r result) int { return r.Chars })
	fastest := lo.MinBy(ok, func(a, b result) bool { return a.WallMs < b.WallMs })
	slowest := lo.MaxBy(ok, func(a, b result) bool { return a.WallMs > b.WallMs })

	fmt.Printf("\nSummary:\n")
	fmt.Printf("- Avg ms/char: %.2f\n", float64(totalWall)/float64(totalChars))
	fmt.Printf("- Min wall: %dms (%s)\n", fastest.WallMs, fastest.Sample)
	fmt.Printf("- Max wall: %dms (%s)\n", slowest.WallMs, slowest.Sample)
	fmt.Printf("- Total runs: %d (%d ok, %d failed)\n", len(results), len(ok), failed)
}

type jsonReport struct {
	Timestamp string   `json:"timestamp"`
	URL       string   `json:"url"`
	Provider  string   `json:"provider"`
	Results   []result `json:"results"`
}

func writeJSON(path string, results []result, baseURL, provider string) error {
	report := jsonReport{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       baseURL,
		Provider:  provider,
		Results:   results,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
