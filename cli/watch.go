package cli

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/handegar/tas2505/publish"
	"github.com/handegar/tas2505/settings"
)

var watchOnce bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Publish register values to redis as they change",
	Long: `Poll pages 0 and 1 and mirror the named registers into redis hashes
<prefix>:page0 and <prefix>:page1. Every change is also published on
<prefix>:changes as NAME=0xVV.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&settings.RedisAddr, "redis", settings.RedisAddr, "redis server address")
	watchCmd.Flags().StringVar(&settings.RedisPrefix, "prefix", settings.RedisPrefix, "key prefix")
	watchCmd.Flags().Float64Var(&settings.WatchInterval, "interval", settings.WatchInterval, "seconds between polls")
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "publish once and exit")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if !watchOnce && interval <= 0 {
		return errors.Wrapf(publish.ErrBadInterval, "--interval %g", settings.WatchInterval)
	}
	ctx := cmd.Context()
	m, err := openMap(ctx)
	if err != nil {
		return err
	}
	defer closeMap(m)

	p := publish.NewRedis(settings.RedisAddr, settings.RedisPrefix)
	defer p.Close()
	if err := p.Ping(ctx); err != nil {
		return err
	}

	if watchOnce {
		n, err := publish.NewWatcher(m, p).Poll(ctx)
		logrus.WithField("registers", n).Info("published")
		return err
	}
	logrus.WithFields(logrus.Fields{"redis": settings.RedisAddr, "interval": interval}).Info("watching")
	return publish.Watch(ctx, m, p, interval)
}
