package main

import (
	"context"
	"log"
	"os"

	"github.com/rxtech-lab/argo-ta/internal/version"
	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "ta",
		Usage:   "Evaluate technical analysis indicators and trading criteria over market data",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			evalCommand(),
			schemaCommand(),
			listIndicatorsCommand(),
			listCriteriaCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
