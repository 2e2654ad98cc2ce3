package main

import (
	"context"
	"go/format"
	"log"
	"os"
	"time"

	"github.com/delaneyj/cellparty/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	outputKey            = "out"
	genericParamCountKey = "count"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate typed class provider helpers for the injector",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  outputKey,
				Usage: "File to write the generated helpers to",
				Value: "injector/class_generated.go",
			},
			&cli.UintFlag{
				Name:  genericParamCountKey,
				Usage: "Highest number of dependencies to generate a helper for",
				Value: 6,
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for injector started !")
	defer func() {
		log.Printf("Codegen for injector finished in %v", time.Since(start))
	}()

	out := cmd.String(outputKey)
	genericParamCount := cmd.Uint(genericParamCountKey)
	log.Printf("Generating Class1..Class%d into %s", genericParamCount, out)

	contents, err := format.Source([]byte(templates.ClassGen(int(genericParamCount))))
	if err != nil {
		return err
	}
	return os.WriteFile(out, contents, 0644)
}
