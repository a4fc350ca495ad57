package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/high-country-wrestling/roster-bot/app"
	"github.com/high-country-wrestling/roster-bot/config"
)

func main() {
	cliApp := &cli.App{
		Name:  "roster-bot",
		Usage: "dual-meet roster assignment service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the configuration file",
			},
		},
		Action: func(c *cli.Context) error {
			return serve(c.String("config"))
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		return err
	}

	return application.Run(ctx)
}
