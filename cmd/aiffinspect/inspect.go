package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/cwbudde/aiff"
)

// inspectCommand prints the chunks of each file in files.
type inspectCommand struct {
	files  *[]string
	verify *bool
	debug  *bool
	out    io.Writer
	logger *zap.Logger
}

func (cmd *inspectCommand) run(_ *kingpin.ParseContext) error {
	logger, err := newLogger(*cmd.debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cmd.logger = logger

	var failed int

	for _, f := range *cmd.files {
		if err := cmd.inspectFile(f); err != nil {
			cmd.logger.Error("failed to inspect file", zap.String("file", f), zap.Error(err))
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(*cmd.files))
	}

	return nil
}

func (cmd *inspectCommand) inspectFile(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	c, err := aiff.NewDecoder(bytes.NewReader(data), aiff.WithLogger(cmd.logger)).Decode()
	if err != nil {
		return fmt.Errorf("failed to decode: %w", err)
	}

	cmd.printContainer(name, c)

	if *cmd.verify {
		return cmd.verifyRoundTrip(data, c)
	}

	return nil
}

func (cmd *inspectCommand) printContainer(name string, c *aiff.Container) {
	bold := color.New(color.Bold)
	bold.Fprintf(cmd.out, "%s:\n", name)
	fmt.Fprintf(cmd.out, "\t%s %s, size: %v, chunks: %d\n",
		c.ID(), c.FormType(), humanize.Bytes(uint64(c.Size())), c.Len())

	if comm, ok := c.Common(); ok {
		f := comm.Format()
		fmt.Fprintf(cmd.out, "\tformat: %d channels, %d Hz, %d bit\n", f.NumChannels, f.SampleRate, comm.SampleSize())
	}

	offset := int64(12)
	for _, ch := range c.Chunks() {
		fmt.Fprintf(cmd.out, "\t%8d  %s  %9v  %s\n", offset, ch.ID(), humanize.Bytes(uint64(ch.Size())), summary(ch))
		offset += int64(ch.PhysicalSize())
	}
}

func (cmd *inspectCommand) verifyRoundTrip(data []byte, c *aiff.Container) error {
	out, err := aiff.EncodeBytes(c)
	if err != nil {
		return fmt.Errorf("failed to re-encode: %w", err)
	}

	if !bytes.Equal(out, data) {
		color.New(color.FgRed).Fprintln(cmd.out, "\tround trip: output differs")
		return fmt.Errorf("re-encoded %d bytes differ from the %d source bytes", len(out), len(data))
	}

	color.New(color.FgGreen).Fprintln(cmd.out, "\tround trip: identical")

	return nil
}

func summary(ch aiff.Chunk) string {
	if s, ok := ch.(fmt.Stringer); ok {
		return s.String()
	}

	return ""
}
