package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/delaneyj/cellparty/injector"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const repeatsKey = "repeats"

func main() {
	cmd := &cli.Command{
		Name:  "benchmark_injector",
		Usage: "Measure resolution of layered provider graphs",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  repeatsKey,
				Usage: "Runs per config, the best one is reported",
				Value: 5,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

type benchmarkConfig struct {
	name        string
	width       int   // providers per layer
	totalLayers int   // layers including the value layer
	nDeps       int   // dependencies per class, drawn from the previous layer
	iterations  int64 // fresh injectors resolved per run
}

type result struct {
	duration    time.Duration
	constructed int64
	sum         int
}

func run(ctx context.Context, cmd *cli.Command) error {
	log.Print("Starting injector benchmark, please wait...")
	defer log.Print("Finished injector benchmark")

	cfgs := []benchmarkConfig{
		{name: "small app", width: 10, totalLayers: 4, nDeps: 2, iterations: 10_000},
		{name: "wide", width: 1_000, totalLayers: 3, nDeps: 8, iterations: 100},
		{name: "deep", width: 5, totalLayers: 200, nDeps: 3, iterations: 500},
		{name: "dense", width: 100, totalLayers: 10, nDeps: 25, iterations: 200},
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"test", "size", "deps", "nTimes", "time", "constructed", "resolves/ms", "checksum",
	})

	repeats := int(cmd.Uint(repeatsKey))
	for _, cfg := range cfgs {
		log.Printf("Running '%s' config", cfg.name)
		constructed := new(int64)
		providers, roots, reachable := makeGraph(cfg, constructed)

		if err := injector.New(providers).Validate(); err != nil {
			return fmt.Errorf("%s: %w", cfg.name, err)
		}

		runOnce := func() (int, error) {
			sum := 0
			for i := int64(0); i < cfg.iterations; i++ {
				inj := injector.New(providers)
				for _, root := range roots {
					v, err := injector.Resolve[int](inj, root, nil)
					if err != nil {
						return 0, err
					}
					sum += v
				}
			}
			return sum, nil
		}
		// run once to warm up
		if _, err := runOnce(); err != nil {
			return err
		}

		best := &result{duration: time.Hour}
		for i := 0; i < repeats; i++ {
			log.Printf("Running '%s' config, iteration %d/%d %d%%", cfg.name, i+1, repeats, (i+1)*100/repeats)
			*constructed = 0
			start := time.Now()
			sum, err := runOnce()
			if err != nil {
				return err
			}
			duration := time.Since(start)
			if duration < best.duration {
				best.duration = duration
				best.sum = sum
				best.constructed = *constructed
			}
		}

		if want := int64(reachable) * cfg.iterations; best.constructed != want {
			return fmt.Errorf("%s: constructed %d instances, want %d", cfg.name, best.constructed, want)
		}

		edges := int64(reachable*cfg.nDeps) * cfg.iterations
		rate := float64(edges) / (float64(best.duration) / float64(time.Millisecond))

		table.Append([]string{
			cfg.name, // test
			fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers), // size
			fmt.Sprint(cfg.nDeps),                           // deps
			humanize.Comma(cfg.iterations),                  // nTimes
			fmt.Sprint(best.duration),                       // time
			humanize.Comma(best.constructed),                // constructed
			humanize.Comma(int64(rate)),                     // resolves/ms
			humanize.Comma(int64(best.sum)),                 // checksum
		})
	}
	table.Render()
	return nil
}

func token(layer, i int) injector.Token {
	return injector.Token(fmt.Sprintf("L%d.%d", layer, i))
}

// makeGraph builds a value layer followed by class layers whose providers
// sum a random pick of the previous layer. The top layer is returned as the
// roots to resolve, along with the number of classes reachable from them.
func makeGraph(cfg benchmarkConfig, constructed *int64) (injector.Providers, []injector.Token, int) {
	random := rand.New(rand.NewSource(0))
	providers := injector.Providers{}
	edges := map[injector.Token][]injector.Token{}

	for i := 0; i < cfg.width; i++ {
		providers[token(0, i)] = injector.Value(i)
	}

	for layer := 1; layer < cfg.totalLayers; layer++ {
		for i := 0; i < cfg.width; i++ {
			deps := make([]injector.Token, cfg.nDeps)
			for d := range deps {
				deps[d] = token(layer-1, random.Intn(cfg.width))
			}
			edges[token(layer, i)] = deps
			providers[token(layer, i)] = injector.Class(deps, func(values []any) (any, error) {
				*constructed++
				sum := 0
				for _, v := range values {
					sum += v.(int) % 1_000_003
				}
				return sum, nil
			})
		}
	}

	roots := make([]injector.Token, cfg.width)
	for i := range roots {
		roots[i] = token(cfg.totalLayers-1, i)
	}

	seen := map[injector.Token]bool{}
	var walk func(t injector.Token)
	walk = func(t injector.Token) {
		deps, ok := edges[t]
		if !ok || seen[t] {
			return
		}
		seen[t] = true
		for _, dep := range deps {
			walk(dep)
		}
	}
	for _, root := range roots {
		walk(root)
	}
	return providers, roots, len(seen)
}
