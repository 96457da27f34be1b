package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/dictionary"
	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/httpserver"
	"github.com/robalobadob/wordscramble/internal/store"
	"github.com/robalobadob/wordscramble/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dict, err := dictionary.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.DictionaryBackend).Msg("failed to open dictionary")
	}
	defer dict.Close()

	lang, _ := cfg.Language() // validated by config.Load
	g := game.New(
		words.Load(cfg.WordsFile),
		game.NewValidator(dict.Checker,
			game.WithLanguage(lang),
			game.WithCheckTimeout(cfg.DictionaryTimeout),
		),
		game.WithDailySalt(cfg.DailySalt),
	)

	sess, err := httpserver.NewSessions(cfg.SessionSecret, cfg.RoundTTL, cfg.Production())
	if err != nil {
		log.Fatal().Err(err).Msg("session setup")
	}

	rounds := store.NewMemoryStore()
	go pruneRounds(ctx, rounds, cfg.RoundTTL)

	srv := httpserver.New(g, rounds, sess,
		httpserver.WithClientOrigin(cfg.ClientOrigin),
		httpserver.WithDictionarySize(dict.Size),
	)
	log.Info().Str("port", cfg.Port).Str("lang", lang.String()).Int("baseWords", g.Words().Len()).Msg("starting go-server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// pruneRounds drops rounds older than ttl until ctx is done.
func pruneRounds(ctx context.Context, rounds store.Store, ttl time.Duration) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := rounds.Prune(ctx, now.Add(-ttl))
			if err != nil {
				log.Warn().Err(err).Msg("prune rounds")
				continue
			}
			if n > 0 {
				log.Info().Int("pruned", n).Int("active", rounds.Len()).Msg("expired rounds pruned")
			}
		}
	}
}
