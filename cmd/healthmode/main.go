// Command healthmode runs the "Health Mode" community funnel bot.
package main

import (
	"fmt"
	"log"

	"github.com/m3rciful/healthmode/core/bootstrap"
	corecmd "github.com/m3rciful/healthmode/core/cmd"
	"github.com/m3rciful/healthmode/internal/app"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			cfg, err := app.LoadConfig(path)
			if err != nil {
				return nil, err
			}
			return cfg, nil
		},
		Bootstrap: func(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg, ok := carrier.(*app.Config)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", carrier)
			}
			res, err := bootstrap.Run(bootstrap.Options{
				Config:   cfg.CoreConfig(),
				Database: cfg.DatabaseOptions(),
			})
			if err != nil {
				return nil, err
			}
			a, err := app.New(cfg, app.Deps{DB: res.DB})
			if err != nil {
				_ = res.Close()
				return nil, err
			}
			return a, nil
		},
	})
	if err != nil {
		log.Fatal(err)
	}
}
