package monitor

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ctabridge/ctabridge/pkg/bustracker"
	"github.com/ctabridge/ctabridge/pkg/config"
	"github.com/ctabridge/ctabridge/pkg/mqtt_client"
	"github.com/ctabridge/ctabridge/pkg/registry"
	"github.com/ctabridge/ctabridge/pkg/traintracker"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "monitor",
		Usage: "Poll CTA predictions and republish them over MQTT",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run an instance of the prediction monitor",
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}

					stopRegistry, err := registry.Load(cfg.StopsFile)
					if err != nil {
						return err
					}

					publisher, err := mqtt_client.Connect(cfg)
					if err != nil {
						return err
					}
					defer publisher.Disconnect()

					monitor := NewMonitor(
						stopRegistry,
						cfg.PollInterval,
						bustracker.NewClient(cfg.BusAPIKey, cfg.HTTPTimeout),
						traintracker.NewClient(cfg.RailAPIKey, cfg.HTTPTimeout),
						publisher,
					)

					go monitor.Run()

					if cfg.StatsListen != "" {
						go func() {
							if err := monitor.StartStatsServer(cfg.StatsListen, publisher); err != nil {
								log.Error().Err(err).Msg("Stats server stopped")
							}
						}()
					}

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					return nil
				},
			},
		},
	}
}
