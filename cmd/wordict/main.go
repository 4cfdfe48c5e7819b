package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/miajio/wordict/pkg/dictionary"
	"github.com/miajio/wordict/pkg/server"
	"github.com/miajio/wordict/pkg/trie"
	"github.com/miajio/wordict/pkg/wordlist"
	"github.com/miajio/wordict/pkg/xlog"
	"github.com/rs/zerolog"
)

var VERSION = "$"

func main() {
	var opts Options
	args, err := flags.Parse(&opts)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	if opts.Version {
		fmt.Println(VERSION)
		os.Exit(0)
	}
	if len(args) != 0 {
		fmt.Fprintf(os.Stderr, "unexpected args %+v\n", args)
		os.Exit(1)
	}

	logger, closer, err := xlog.New(xlog.Config{Level: opts.LogLevel, Output: opts.LogFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, "init log failed: ", err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := run(opts, logger, os.Stdout); err != nil {
		logger.Error().Err(err).Str("log_type", "main").Msg("wordict failed")
		closer.Close()
		os.Exit(1)
	}
}

func run(opts Options, logger zerolog.Logger, out io.Writer) error {
	cfg := dictionary.Default()
	cfg.Symbols = opts.Alphabet
	cfg.Strategy = dictionary.Strategy(opts.Strategy)
	cfg.CacheSize = opts.CacheSize
	cfg.Logger = logger

	dict, err := dictionary.New(cfg)
	if err != nil {
		return err
	}
	defer dict.Close()

	for _, path := range opts.Words {
		if err := loadWords(dict, path, opts.SkipInvalid, logger); err != nil {
			return err
		}
	}

	if opts.Listen != "" {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
		defer stop()
		srv := server.New(server.Config{Listen: opts.Listen}, dict, logger)
		return srv.ListenAndServe(ctx)
	}

	return printResults(dict, opts, out)
}

// loadWords 加载词表文件
func loadWords(dict *dictionary.Engine, path string, skipInvalid bool, logger zerolog.Logger) error {
	words, err := wordlist.ReadFile(path)
	if err != nil {
		return err
	}

	added, skipped := 0, 0
	for _, w := range words {
		n, err := dict.AddWords(dictionary.SourceFile, w)
		if err != nil {
			if skipInvalid && errors.Is(err, trie.ErrInvalidInput) {
				skipped++
				continue
			}
			return fmt.Errorf("%s: %w", path, err)
		}
		added += n
	}
	logger.Info().Str("log_type", "main").Str("file", path).
		Int("added", added).Int("skipped", skipped).Msg("word list loaded")
	return nil
}

// printResults 每个模式输出一行: pattern<TAB>true|false 或匹配的词
func printResults(dict *dictionary.Engine, opts Options, out io.Writer) error {
	for _, p := range opts.Patterns {
		if opts.Match {
			entries, err := dict.Match(p, opts.Limit)
			if err != nil {
				return err
			}
			words := make([]string, 0, len(entries))
			for _, e := range entries {
				words = append(words, e.Word)
			}
			fmt.Fprintf(out, "%s\t%s\n", p, strings.Join(words, ","))
			continue
		}

		found, err := dict.Search(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%t\n", p, found)
	}
	return nil
}
