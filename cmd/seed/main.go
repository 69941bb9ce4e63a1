// seed crea el primer usuario Admin contra la base configurada (mismas variables que cmd/api).
//
// Uso: go run ./cmd/seed --username admin --password 'secreto'
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/repairnotes-api/internal/application/dto"
	"github.com/jhoicas/repairnotes-api/internal/application/usecase"
	"github.com/jhoicas/repairnotes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/repairnotes-api/pkg/config"
)

// noAvatars el seed nunca sube avatares.
type noAvatars struct{}

func (noAvatars) Save(context.Context, string, io.Reader) (string, error) {
	return "", fmt.Errorf("seed: subida de avatar no soportada")
}
func (noAvatars) Remove(context.Context, string) error { return nil }

func main() {
	flagSet := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	username := flagSet.StringP("username", "u", "admin", "username del administrador")
	password := flagSet.StringP("password", "p", "", "password del administrador (requerido)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Argumentos: %v\n", err)
		os.Exit(2)
	}

	if *password == "" {
		fmt.Fprintln(os.Stderr, "Uso: seed --username <nombre> --password <password>")
		flagSet.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Migrar: %v\n", err)
		os.Exit(1)
	}

	users := usecase.NewUserUseCase(
		postgres.NewUserRepository(pool),
		postgres.NewNoteRepository(pool),
		noAvatars{},
		cfg.Uploads.DefaultAvatar(),
		time.Now,
	)
	msg, err := users.Create(ctx, dto.CreateUserRequest{
		Username: *username,
		Password: *password,
		Roles:    "Admin",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear administrador: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(msg)
}
