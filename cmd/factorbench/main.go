//go:build bench

// Command factorbench sweeps semiprime digit counts, times each engine
// against a freshly generated test case per digit count, and renders an
// HTML chart of the results (§1: external, replaceable benchmarking
// harness).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/cpirmayr/factorization/bignat"
	"github.com/cpirmayr/factorization/driver"
	"github.com/cpirmayr/factorization/numtheory"
)

type timedEngine struct {
	name string
	alg  driver.Algorithm
}

var sweepEngines = []timedEngine{
	{"SQUFOF", driver.AlgorithmSQUFOF},
	{"PollardRhoCombined", driver.AlgorithmPollardRhoCombined},
	{"PollardPm1Reference", driver.AlgorithmPollardPm1Reference},
	{"CFRAC", driver.AlgorithmCFRAC},
}

func main() {
	minDigits := flag.Int("min", 8, "smallest semiprime digit count to sweep")
	maxDigits := flag.Int("max", 20, "largest semiprime digit count to sweep")
	step := flag.Int("step", 4, "digit count increment")
	outDir := flag.String("out", "bench_reports", "output directory for the HTML report")
	seed := flag.Int64("seed", 1, "seed for reproducible semiprime generation")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("mkdir: %v", err)
	}

	digitCounts := []int{}
	for d := *minDigits; d <= *maxDigits; d += *step {
		digitCounts = append(digitCounts, d)
	}

	series := make(map[string][]opts.LineData)
	for _, e := range sweepEngines {
		series[e.name] = nil
	}
	xLabels := make([]string, len(digitCounts))

	for i, digits := range digitCounts {
		xLabels[i] = fmt.Sprintf("%d", digits)
		s := *seed + int64(i)
		n, _, _, err := numtheory.GenerateSemiprime(digits, &s)
		if err != nil {
			log.Printf("warn: GenerateSemiprime(%d): %v", digits, err)
			for _, e := range sweepEngines {
				series[e.name] = append(series[e.name], opts.LineData{Value: nil})
			}
			continue
		}
		for _, e := range sweepEngines {
			eng := driver.ChooseAlgorithm(e.alg)
			start := time.Now()
			_ = eng(n.Clone())
			elapsed := time.Since(start).Seconds()
			series[e.name] = append(series[e.name], opts.LineData{Value: elapsed})
			log.Printf("[factorbench] digits=%d engine=%s elapsed=%.3fs", digits, e.name, elapsed)
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Factorization engine sweep", Subtitle: "seconds per engine vs. semiprime digit count"}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "factorbench", Width: "1100px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(xLabels)
	for _, e := range sweepEngines {
		line.AddSeries(e.name, series[e.name])
	}

	ts := time.Now().Format("20060102_150405")
	htmlPath := filepath.Join(*outDir, fmt.Sprintf("sweep_%s.html", ts))
	f, err := os.Create(htmlPath)
	if err != nil {
		log.Fatalf("create html: %v", err)
	}
	defer f.Close()
	if err := line.Render(f); err != nil {
		log.Fatalf("render html: %v", err)
	}
	fmt.Println("Sweep report:", htmlPath)
}

var _ = bignat.FromInt64 // the only use of the bignat import in this file
