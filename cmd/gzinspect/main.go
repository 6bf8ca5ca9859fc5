// Команда gzinspect просмотр, проверка и перезапись раздела слепков
// файла проекта.
package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/sirkon/errors"
	"github.com/sirkon/message"
)

type cli struct {
	Settings string `help:"YAML file with cache capacities." env:"GREENZONE_SETTINGS" type:"existingfile"`
	LogLevel string `help:"Log level." default:"info" enum:"trace,debug,info,warn,error" env:"GREENZONE_LOG_LEVEL"`
	Store    string `help:"Secondary store kind." default:"memory" enum:"memory,disk,sqlite,redis" env:"GREENZONE_STORE"`
	StoreAt  string `help:"Directory for the disk store or database path for the sqlite one." env:"GREENZONE_STORE_AT"`
	RedisURL string `help:"Redis URL for the redis store." env:"REDIS_URL"`

	Inspect inspectCommand `cmd:"" help:"List states of a saved section."`
	Verify  verifyCommand  `cmd:"" help:"Load a saved section into a cache and report usage."`
	Rewrite rewriteCommand `cmd:"" help:"Load a saved section and save it again under the configured save cap."`
}

func main() {
	// Файла может и не быть.
	_ = godotenv.Load()

	var args cli
	ctx := kong.Parse(
		&args,
		kong.Name("gzinspect"),
		kong.Description("Greenzone section inspection tool."),
		kong.UsageOnError(),
	)

	level, err := zerolog.ParseLevel(args.LogLevel)
	if err != nil {
		message.Critical(errors.Wrap(err, "parse log level"))
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	env, err := newEnvironment(&args, log)
	if err != nil {
		message.Critical(errors.Wrap(err, "set up environment"))
	}

	if err := ctx.Run(env); err != nil {
		message.Critical(errors.Wrap(err, "run "+ctx.Command()))
	}
}
