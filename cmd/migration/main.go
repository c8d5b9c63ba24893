// Aplica as migrações de banco do gestor-api.
//
//	go run ./cmd/migration            # aplica pendentes
//	go run ./cmd/migration -down      # reverte a última
package main

import (
	"flag"
	"os"

	"github.com/gestorpro/gestor-api/internal/infrastructure/database"
	"github.com/gestorpro/gestor-api/pkg/config"
	"github.com/gestorpro/gestor-api/pkg/logger"
)

func main() {
	down := flag.Bool("down", false, "reverte a última migração em vez de aplicar")
	path := flag.String("path", "migrations", "diretório dos arquivos de migração")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("erro ao carregar configuração: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if *down {
		if err := database.RollbackLast(cfg.DB, *path); err != nil {
			log.Error().Err(err).Msg("erro ao reverter migração")
			os.Exit(1)
		}
		log.Info().Msg("última migração revertida")
		return
	}

	if err := database.RunMigrations(cfg.DB, *path); err != nil {
		log.Error().Err(err).Msg("erro ao aplicar migrações")
		os.Exit(1)
	}
	log.Info().Msg("migrações aplicadas com sucesso")
}
