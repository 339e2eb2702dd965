// This tool converts a PCM wav file into an aiff file. The output is
// written next to the source unless -output is set.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cwbudde/aiff"
)

var errMissingInput = errors.New("you must set the -input flag")

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	outPath, err := run(os.Args[1:], logger)
	if err != nil {
		logger.Error("conversion failed", zap.Error(err))
		os.Exit(1)
	}

	fmt.Printf("Wav file converted to %s\n", outPath)
}

func run(args []string, logger *zap.Logger) (string, error) {
	fs := flag.NewFlagSet("wav2aiff", flag.ContinueOnError)
	input := fs.String("input", "", "The path to the wav file to convert to aiff")
	output := fs.String("output", "", "The path of the aiff file to write, defaults to the input path with an .aif extension")

	if err := fs.Parse(args); err != nil {
		return "", err
	}

	if *input == "" {
		return "", errMissingInput
	}

	sourcePath, err := expandHome(*input)
	if err != nil {
		return "", err
	}

	outPath := *output
	if outPath == "" {
		outPath = sourcePath[:len(sourcePath)-len(filepath.Ext(sourcePath))] + ".aif"
	}

	in, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("invalid path %s: %w", sourcePath, err)
	}
	defer in.Close()

	buf, err := readWav(in)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", sourcePath, err)
	}

	logger.Info("read wav file",
		zap.String("path", sourcePath),
		zap.Int("channels", buf.Format.NumChannels),
		zap.Int("sampleRate", buf.Format.SampleRate),
		zap.Int("bitDepth", buf.SourceBitDepth),
		zap.Int("frames", buf.NumFrames()))

	c, err := toContainer(buf)
	if err != nil {
		return "", err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer out.Close()

	if err := aiff.NewEncoder(out, aiff.WithLogger(logger)).Encode(c); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	return outPath, out.Close()
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	usr, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get the user home directory: %w", err)
	}

	return strings.Replace(path, "~", usr.HomeDir, 1), nil
}
