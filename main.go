package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/guessru/go-server/internal/httpserver"
	"github.com/guessru/go-server/internal/roster"
	"github.com/guessru/go-server/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := roster.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load contestant roster")
	}

	db, err := openDB(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	srv := httpserver.New(db, store.NewSQLiteKV(db))
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Int("roster", roster.Len()).Msg("starting guessru-go")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
