// aiffinspect prints the chunk layout of AIFF files.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
)

func main() {
	app := newApp(os.Stdout)
	if _, err := app.Parse(os.Args[1:]); err != nil {
		exitWithErr(err)
	}
}

func newApp(out io.Writer) *kingpin.Application {
	app := kingpin.New("aiffinspect", "A command-line tool to inspect the chunks of AIFF files.")
	app.UsageWriter(out)

	cmd := &inspectCommand{out: out}
	cmd.debug = app.Flag("debug", "Trace chunk dispatch while decoding.").Bool()
	cmd.verify = app.Flag("verify", "Re-encode each file and report whether the output is byte identical.").Bool()
	cmd.files = app.Arg("file", "The AIFF files to inspect.").Required().ExistingFiles()
	app.Action(cmd.run)

	return app
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	return cfg.Build()
}

func exitWithErr(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
