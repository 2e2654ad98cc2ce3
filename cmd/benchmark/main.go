package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/delaneyj/cellparty/cell"
	"github.com/delaneyj/cellparty/collection"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	itersKey      = "iters"
	cpuProfileKey = "cpuprofile"
	renderKey     = "render"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure delta propagation through observable collections",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  itersKey,
				Usage: "Mutations timed per size and observer count",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  cpuProfileKey,
				Usage: "Write a CPU profile to this file",
			},
			&cli.BoolFlag{
				Name:  renderKey,
				Usage: "Print result tables",
				Value: true,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(cpuProfileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	iters := int(cmd.Uint(itersKey))
	shouldRender := cmd.Bool(renderKey)

	log.Printf("benchmarking arrays")
	if err := benchmarkArray(iters, shouldRender); err != nil {
		return err
	}
	log.Printf("benchmarking maps")
	return benchmarkMap(iters, shouldRender)
}

var (
	sizes     = []int{10, 100, 1_000}
	observers = []int{1, 10, 100}
)

type arrayMirror = collection.Mirror[cell.Cell[int], cell.Cell[int]]

type arrayOp struct {
	name string
	fn   func(a *collection.Array[int], i int)
}

var arrayOps = []arrayOp{
	{
		name: "push/pop",
		fn: func(a *collection.Array[int], i int) {
			a.Push(i)
			a.Remove(a.Len() - 1)
		},
	},
	{
		name: "insert/remove front",
		fn: func(a *collection.Array[int], i int) {
			a.Insert(0, i)
			a.Remove(0)
		},
	},
	{
		name: "update",
		fn: func(a *collection.Array[int], i int) {
			a.Update(i%a.Len(), i)
		},
	},
	{
		name: "removeIf odd/pushAll",
		fn: func(a *collection.Array[int], i int) {
			var removed []int
			a.RemoveIf(func(v, _ int) bool {
				if v%2 == 0 {
					return false
				}
				removed = append(removed, v)
				return true
			})
			a.PushAll(removed...)
		},
	},
}

func formatCell(c cell.Cell[int]) string {
	return strconv.Itoa(c.Value())
}

func benchmarkArray(iters int, shouldRender bool) error {
	tbl := table.NewWriter()
	tbl.SetTitle("Observable Array")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, op := range arrayOps {
		for _, n := range sizes {
			for _, h := range observers {
				tach := tachymeter.New(&tachymeter.Config{Size: iters})

				initial := make([]int, n)
				for i := range initial {
					initial[i] = i
				}
				a := collection.NewArray(initial...)
				mirrors := make([]*arrayMirror, h)
				for i := range mirrors {
					mirrors[i] = collection.NewMirror[cell.Cell[int], cell.Cell[int]](a)
				}

				for i := 0; i < iters; i++ {
					start := time.Now()
					op.fn(a, i)
					tach.AddTime(time.Since(start))
				}

				want := collection.Fingerprint(a.Values(), strconv.Itoa)
				for i, m := range mirrors {
					if got := m.Fingerprint(formatCell); got != want {
						return fmt.Errorf("%s %dx%d: mirror %d diverged (%x != %x)", op.name, n, h, i, got, want)
					}
					m.Close()
				}

				calc := tach.Calc()
				tbl.AppendRows([]table.Row{
					{
						fmt.Sprintf("%s: %d items * %d observers", op.name, n, h),
						calc.Time.Avg,
						calc.Time.Min,
						calc.Time.P75,
						calc.Time.P99,
						calc.Time.Max,
					},
				})
			}
		}
	}

	if shouldRender {
		tbl.Render()
	}
	return nil
}

func benchmarkMap(iters int, shouldRender bool) error {
	tbl := table.NewWriter()
	tbl.SetTitle("Observable Map")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	key := func(s string) string { return s }

	for _, n := range sizes {
		for _, h := range observers {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			m := collection.NewMap[string, int]()
			for i := 0; i < n; i++ {
				m.Set("k"+strconv.Itoa(i), i)
			}
			mirrors := make([]*collection.Mirror[cell.Cell[int], string], h)
			for i := range mirrors {
				mirrors[i] = collection.NewMirror[cell.Cell[int], string](m)
			}

			for i := 0; i < iters; i++ {
				// delete from the middle so every observer translates a shifted index
				k := "k" + strconv.Itoa(i%n)
				start := time.Now()
				m.Delete(k)
				m.Set(k, i)
				tach.AddTime(time.Since(start))
			}

			want := collection.Fingerprint(m.Keys(), key)
			for i, mirror := range mirrors {
				if got := collection.Fingerprint(mirror.Keys(), key); got != want {
					return fmt.Errorf("map %dx%d: mirror %d diverged (%x != %x)", n, h, i, got, want)
				}
				mirror.Close()
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("delete/set: %d keys * %d observers", n, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
	return nil
}
