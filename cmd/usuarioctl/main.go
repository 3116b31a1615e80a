package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/dcastillo-dev/usuarios-api/config"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/entity"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/service"
	pginfra "github.com/dcastillo-dev/usuarios-api/internal/infrastructure/postgres"
)

const usage = `usuarioctl manages usuarios from the command line.

Usage:
  usuarioctl create -nombre NAME -email EMAIL -password PASS [-apellido-paterno X] [-apellido-materno Y] [-roles admin,user]
  usuarioctl list [-page N] [-per-page N] [-active-only]
`

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := config.Load()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, time.Hour)
	if err != nil {
		fatal("connect: %v", err)
	}
	defer pool.Close()

	repo := pginfra.NewUsuarioRepository(pool)
	svc := service.NewUsuarioService(repo)

	switch os.Args[1] {
	case "create":
		runCreate(ctx, svc, os.Args[2:])
	case "list":
		runList(ctx, repo, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runCreate(ctx context.Context, svc *service.UsuarioService, args []string) {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	nombre := fs.String("nombre", "", "first name (required)")
	email := fs.String("email", "", "email address (required)")
	password := fs.String("password", "", "plaintext password (required)")
	apPaterno := fs.String("apellido-paterno", "", "paternal surname")
	apMaterno := fs.String("apellido-materno", "", "maternal surname")
	rolesFlag := fs.String("roles", "", "comma-separated role names")
	_ = fs.Parse(args)

	var roles []entity.Role
	for _, name := range strings.Split(*rolesFlag, ",") {
		if name = strings.TrimSpace(name); name != "" {
			roles = append(roles, entity.Role{Name: name})
		}
	}

	usuario, err := svc.CreateUsuario(ctx, *nombre, *email, *password, *apPaterno, *apMaterno, roles)
	if err != nil {
		fatal("create: %v", err)
	}
	fmt.Printf("created usuario id=%d email=%s\n", usuario.ID(), usuario.Email().Value())
}

func runList(ctx context.Context, repo *pginfra.UsuarioRepository, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	perPage := fs.Int("per-page", 15, "results per page")
	activeOnly := fs.Bool("active-only", false, "only active usuarios")
	_ = fs.Parse(args)

	var (
		usuarios []*entity.Usuario
		err      error
	)
	if *activeOnly {
		usuarios, err = repo.FindActive(ctx)
	} else {
		usuarios, err = repo.FindAll(ctx, *page, *perPage)
	}
	if err != nil {
		fatal("list: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tEMAIL\tROLES\tACTIVO\tCREATED")
	for _, u := range usuarios {
		names := make([]string, 0, len(u.Roles()))
		for _, r := range u.Roles() {
			names = append(names, r.Name)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\t%s\n",
			u.ID(), u.FullName(), u.Email().Value(),
			strings.Join(names, ","), u.IsActive(),
			u.CreatedAt().Format(time.RFC3339),
		)
	}
	_ = w.Flush()
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
