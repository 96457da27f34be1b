// Package main provides the scramble terminal front-end: play rounds, check
// words against the dictionary, and list base words.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/dictionary"
	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/present"
	"github.com/robalobadob/wordscramble/internal/words"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "scramble",
		Short: "Make words from the letters of a base word",
		Long: `scramble picks a base word and accepts words spelled from its letters.

Answers must differ from the base word, be new in the round, be at least
three letters long and be recognised by the dictionary. Configuration comes
from the same environment variables as the server (DICTIONARY_BACKEND,
DICTIONARY_FILE, WORDS_FILE, LANGUAGE, ...).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()})
			if logLevel == "" {
				return nil
			}
			lvl, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			zerolog.SetGlobalLevel(lvl)
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(playCmd(), checkCmd(), wordsCmd())
	return cmd
}

func playCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play rounds in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd.Context(), func(g *game.Game) error {
				return present.NewTerminal(g, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
			})
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <word>...",
		Short: "Report whether each word is in the dictionary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			lang, err := cfg.Language()
			if err != nil {
				return err
			}
			dict, err := dictionary.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer dict.Close()
			return checkWords(cmd.Context(), cmd.OutOrStdout(), dict.Checker, lang, args)
		},
	}
}

func wordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words",
		Short: "List the base words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			for _, w := range words.Load(cfg.WordsFile).Words() {
				fmt.Fprintln(cmd.OutOrStdout(), w)
			}
			return nil
		},
	}
}

// withGame builds a game from the environment and passes it to fn.
func withGame(ctx context.Context, fn func(*game.Game) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	lang, err := cfg.Language()
	if err != nil {
		return err
	}
	dict, err := dictionary.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer dict.Close()

	g := game.New(
		words.Load(cfg.WordsFile),
		game.NewValidator(dict.Checker,
			game.WithLanguage(lang),
			game.WithCheckTimeout(cfg.DictionaryTimeout),
		),
		game.WithDailySalt(cfg.DailySalt),
	)
	return fn(g)
}

func checkWords(ctx context.Context, out io.Writer, c dictionary.Checker, lang language.Tag, list []string) error {
	for _, w := range list {
		ok, err := dictionary.IsWord(ctx, c, w, lang)
		if err != nil {
			return fmt.Errorf("check %q: %w", w, err)
		}
		mark := "no"
		if ok {
			mark = "yes"
		}
		fmt.Fprintf(out, "%s\t%s\n", w, mark)
	}
	return nil
}
