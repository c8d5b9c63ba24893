// Package database aplica as migrações de schema com golang-migrate.
package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/gestorpro/gestor-api/pkg/config"
)

// RunMigrations aplica as migrações pendentes do diretório informado.
// ErrNoChange não é erro: o banco já está na versão mais recente.
func RunMigrations(cfg config.DBConfig, migrationsPath string) error {
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	sourceURL := "file://" + migrationsPath

	m, err := migrate.New(sourceURL, cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("criar migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("aplicar migrações: %w", err)
	}
	return nil
}

// RollbackLast desfaz a última migração aplicada.
func RollbackLast(cfg config.DBConfig, migrationsPath string) error {
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	sourceURL := "file://" + migrationsPath

	m, err := migrate.New(sourceURL, cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("criar migrate: %w", err)
	}
	defer m.Close()

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("reverter migração: %w", err)
	}
	return nil
}
