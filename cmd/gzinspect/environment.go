package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/sirkon/errors"

	"github.com/sirkon/greenzone"
	"github.com/sirkon/greenzone/observe/prom"
	"github.com/sirkon/greenzone/observe/zlog"
	"github.com/sirkon/greenzone/stores/diskstore"
	"github.com/sirkon/greenzone/stores/memstore"
	"github.com/sirkon/greenzone/stores/redisstore"
	"github.com/sirkon/greenzone/stores/sqlitestore"
)

// environment общее для команд окружение.
type environment struct {
	settings greenzone.Settings
	opener   greenzone.StoreOpener
	log      zerolog.Logger
	registry *prometheus.Registry
	metrics  *prom.Metrics
	out      io.Writer
}

func newEnvironment(args *cli, log zerolog.Logger) (*environment, error) {
	settings := greenzone.DefaultSettings()
	if args.Settings != "" {
		var err error
		settings, err = greenzone.LoadSettings(args.Settings)
		if err != nil {
			return nil, errors.Wrap(err, "load settings")
		}
	}

	opener, err := storeOpener(args, settings)
	if err != nil {
		return nil, errors.Wrap(err, "select secondary store")
	}

	reg := prometheus.NewRegistry()
	return &environment{
		settings: settings,
		opener:   opener,
		log:      log,
		registry: reg,
		metrics:  prom.New(reg),
		out:      os.Stdout,
	}, nil
}

func storeOpener(args *cli, settings greenzone.Settings) (greenzone.StoreOpener, error) {
	capacity := uint64(settings.DiskCap)

	switch args.Store {
	case "memory":
		return memstore.Opener(capacity), nil
	case "disk":
		base := args.StoreAt
		if base == "" {
			base = os.TempDir()
		}
		return diskstore.Opener(base, capacity), nil
	case "sqlite":
		path := args.StoreAt
		if path == "" {
			path = filepath.Join(os.TempDir(), "greenzone.db")
		}
		return sqlitestore.Opener(path, capacity), nil
	case "redis":
		if args.RedisURL == "" {
			return nil, errors.New("redis url is required for the redis store")
		}
		return redisstore.Opener(args.RedisURL, capacity), nil
	default:
		return nil, errors.Newf("unknown store kind '%s'", args.Store)
	}
}

// loadCache создание кэша с содержимым раздела из файла.
func (e *environment) loadCache(path string) (*greenzone.Cache, error) {
	section, err := readSection(path)
	if err != nil {
		return nil, err
	}

	c, err := greenzone.New(
		section,
		section,
		e.settings,
		e.opener,
		greenzone.WithLogger(greenzone.Loggers(zlog.New(e.log), e.metrics)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create cache")
	}

	if err := section.load(c); err != nil {
		_ = c.Close()
		return nil, errors.Wrap(err, "load section").Str("section-path", path)
	}

	return c, nil
}

// report вывод использования кэша и снятых метрик.
func (e *environment) report(c *greenzone.Cache) error {
	_, _ = fmt.Fprintf(
		e.out,
		"states: %d, last frame: %d, memory: %s, secondary: %s\n",
		c.StateCount(),
		c.LastKey(),
		greenzone.ByteSize(c.MemoryUsed()),
		greenzone.ByteSize(c.SecondaryUsed()),
	)

	families, err := e.registry.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}

	for _, f := range families {
		for _, m := range f.GetMetric() {
			value := m.GetCounter().GetValue() + m.GetGauge().GetValue()
			var labels string
			for _, l := range m.GetLabel() {
				labels += fmt.Sprintf("{%s=%q}", l.GetName(), l.GetValue())
			}
			_, _ = fmt.Fprintf(e.out, "  %s%s %g\n", f.GetName(), labels, value)
		}
	}

	return nil
}
