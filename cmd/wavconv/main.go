// SPDX-License-Identifier: EPL-2.0

// Command wavconv converts WAV, MP3, Ogg Vorbis or AIFF input into a PCM WAV
// file written by the tinywav engine.
//
//	wavconv [flags] <input.{wav|mp3|ogg|aif|aiff}> <output.wav>
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ik5/tinywav"
	"github.com/ik5/tinywav/audio"
	"github.com/ik5/tinywav/formats/wav"
)

var errUsage = errors.New("usage: wavconv [flags] <input> <output.wav>")

type config struct {
	format  wav.SampleFormat
	block   int
	mono    bool
	verbose bool
	in, out string
}

func parseArgs(args []string, stderr io.Writer) (config, error) {
	var (
		cfg    config
		format string
	)

	fs := flag.NewFlagSet("wavconv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&format, "format", "int16", "output sample format: int16 or float32")
	fs.IntVar(&cfg.block, "block", tinywav.DefaultBlockFrames, "frames per read/write block")
	fs.BoolVar(&cfg.mono, "mono", false, "downmix to a single channel")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() != 2 {
		return cfg, errUsage
	}
	cfg.in, cfg.out = fs.Arg(0), fs.Arg(1)

	f, err := wav.ParseSampleFormat(format)
	if err != nil {
		return cfg, err
	}
	cfg.format = f

	if cfg.block < 1 {
		return cfg, fmt.Errorf("-block must be positive, got %d", cfg.block)
	}

	return cfg, nil
}

func convert(cfg config, logger *slog.Logger) error {
	reg := tinywav.NewRegistry(wav.WithLogger(logger))

	src, err := reg.Open(cfg.in)
	if err != nil {
		return err
	}
	defer src.Close()

	logger.Debug("opened input",
		"path", cfg.in,
		"sample_rate", src.SampleRate(),
		"channels", src.Channels(),
	)

	if cfg.mono {
		src = audio.NewDownmix(src)
	}

	frames, err := tinywav.Transcode(src, cfg.out, cfg.format, cfg.block, wav.WithLogger(logger))
	if err != nil {
		return err
	}

	logger.Info("wrote output",
		"path", cfg.out,
		"frames", frames,
		"format", cfg.format,
		"channels", src.Channels(),
	)

	return nil
}

func run(args []string, stderr io.Writer) int {
	cfg, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := convert(cfg, logger); err != nil {
		logger.Error("conversion failed", "input", cfg.in, "error", err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}
