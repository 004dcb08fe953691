package main

import (
	"context"
	"os"

	"vaultwidget/internal/cli"
	"vaultwidget/internal/logs"
	"vaultwidget/internal/tui"
)

func main() {
	deps := cli.DefaultDeps()
	deps.RunTUI = func(ctx context.Context, env *cli.Env) error {
		// Log lines on stderr would tear the alt screen
		if env.Config.LogDir == "" {
			logs.Silence()
		}
		return tui.Run(ctx, tui.Deps{
			Config:       env.Config,
			Store:        env.Store,
			Scanner:      env.Scanner,
			Links:        env.Links,
			Launcher:     env.Launcher,
			RootOverride: env.RootOverride,
		})
	}

	os.Exit(cli.Execute(context.Background(), os.Args[1:], deps))
}
