// Creates the first administrator.
// Usage: go run ./cmd/seeduser -username admin -password 'senha-forte'
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"autocenter/internal/config"
	"autocenter/internal/dto"
	"autocenter/internal/infra"
	"autocenter/internal/model"
	"autocenter/internal/repository"
	"autocenter/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	username := flag.String("username", "admin", "login")
	password := flag.String("password", "", "password (min 8 chars)")
	nome := flag.String("nome", "Administrador", "display name")
	email := flag.String("email", "", "optional email")
	rol := flag.String("rol", model.RolAdministrador, "administrador | supervisor | atendente")
	flag.Parse()

	if len(*password) < 8 {
		log.Fatal().Msg("-password must have at least 8 characters")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	req := dto.CriarUsuarioRequest{
		Username: *username,
		Nome:     *nome,
		Password: *password,
		Rol:      *rol,
	}
	if *email != "" {
		req.Email = email
	}

	svc := service.NewAuthService(repository.NewUsuarioRepository(db), repository.NewPerfilRepository(db), cfg)
	u, err := svc.CriarUsuario(context.Background(), req)
	switch {
	case errors.Is(err, service.ErrConflito):
		log.Warn().Str("username", *username).Msg("user already exists, nothing to do")
	case err != nil:
		log.Fatal().Err(err).Msg("failed to create user")
	default:
		log.Info().Str("id", u.ID).Str("username", u.Username).Str("rol", u.Rol).Msg("user created")
	}
}
