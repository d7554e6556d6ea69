// Package cli implementa adminctl: la sesión del panel desde la terminal,
// guardada en un archivo YAML en lugar de la cookie del navegador.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invorya-admin/internal/application/auth"
	"github.com/jhoicas/invorya-admin/internal/infrastructure/backend"
	"github.com/jhoicas/invorya-admin/internal/infrastructure/file"
	"github.com/jhoicas/invorya-admin/pkg/config"
	"github.com/jhoicas/invorya-admin/pkg/logger"
)

// Namespace del almacenamiento de la CLI.
const Namespace = "cli"

// Env lo que necesitan los subcomandos.
type Env struct {
	Sessions *auth.SessionManager
	Out      io.Writer
	// Password lee la contraseña cuando no se pasa --password.
	Password func() (string, error)
	Now      func() time.Time
}

// Opener construye el Env a partir de los flags globales.
type Opener func(cmd *cobra.Command) (*Env, error)

type rootFlags struct {
	storagePath string
	backendURL  string
}

// NewRootCommand arma el árbol de comandos. open nil lee la configuración de entorno.
func NewRootCommand(open Opener) *cobra.Command {
	flags := &rootFlags{}
	if open == nil {
		open = defaultOpener(flags)
	}
	root := &cobra.Command{
		Use:           "adminctl",
		Short:         "Sesión y permisos del panel Invorya desde la terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.storagePath, "storage", "", "archivo de sesión (por defecto $HOME/.invorya/storage.yaml)")
	root.PersistentFlags().StringVar(&flags.backendURL, "backend", "", "URL base de la API de inventario (por defecto BACKEND_BASE_URL)")

	root.AddCommand(
		newLoginCmd(open),
		newLogoutCmd(open),
		newWhoamiCmd(open),
		newCanCmd(open),
		newPermissionsCmd(open),
	)
	return root
}

// defaultOpener lee la configuración de entorno y abre el archivo de sesión.
func defaultOpener(flags *rootFlags) Opener {
	return func(cmd *cobra.Command) (*Env, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		path := flags.storagePath
		if path == "" {
			if path, err = file.DefaultPath(); err != nil {
				return nil, err
			}
		}
		baseURL := cfg.Backend.BaseURL
		if flags.backendURL != "" {
			baseURL = flags.backendURL
		}

		log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: cmd.ErrOrStderr()})
		store := file.NewStorage(path)
		client := backend.NewClient(backend.Config{BaseURL: baseURL, Timeout: cfg.Backend.Timeout()}, store, log)
		sessions := auth.NewSessionManager(store, backend.NewAuthAPI(client), auth.Options{CheckExpiry: cfg.Session.CheckExpiry}, log)
		return &Env{Sessions: sessions, Out: cmd.OutOrStdout(), Password: promptPassword(cmd), Now: time.Now}, nil
	}
}

// Execute ejecuta adminctl con el contexto dado.
func Execute(ctx context.Context) error {
	return NewRootCommand(nil).ExecuteContext(ctx)
}

func printf(env *Env, format string, args ...any) {
	_, _ = fmt.Fprintf(env.Out, format, args...)
}
