package main

import (
	"fmt"
	"os"

	"github.com/sirkon/errors"

	"github.com/sirkon/greenzone"
)

type inspectCommand struct {
	Path string `arg:"" help:"Section file." type:"existingfile"`
}

func (cmd *inspectCommand) Run(env *environment) error {
	s, err := readSection(cmd.Path)
	if err != nil {
		return err
	}

	var total int
	for _, st := range s.states {
		total += len(st.data)
		_, _ = fmt.Fprintf(env.out, "%8d %s\n", st.frame, greenzone.ByteSize(len(st.data)))
	}
	_, _ = fmt.Fprintf(env.out, "%d states, %s\n", len(s.states), greenzone.ByteSize(total))

	return nil
}

type verifyCommand struct {
	Path string `arg:"" help:"Section file." type:"existingfile"`
}

func (cmd *verifyCommand) Run(env *environment) error {
	c, err := env.loadCache(cmd.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			env.log.Error().Err(err).Msg("close cache")
		}
	}()

	for _, frame := range c.Frames() {
		if _, _, err := c.Get(frame); err != nil {
			return errors.Wrap(err, "read back state").Int("frame", frame)
		}
	}

	return env.report(c)
}

type rewriteCommand struct {
	Path   string `arg:"" help:"Source section file." type:"existingfile"`
	Output string `arg:"" help:"Destination section file."`
}

func (cmd *rewriteCommand) Run(env *environment) error {
	c, err := env.loadCache(cmd.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			env.log.Error().Err(err).Msg("close cache")
		}
	}()

	dst, err := os.Create(cmd.Output)
	if err != nil {
		return errors.Wrap(err, "create output file").Str("output-path", cmd.Output)
	}

	if err := c.Save(dst); err != nil {
		_ = dst.Close()
		return errors.Wrap(err, "save states").Str("output-path", cmd.Output)
	}

	if err := dst.Close(); err != nil {
		return errors.Wrap(err, "close output file").Str("output-path", cmd.Output)
	}

	return env.report(c)
}
