package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	appauth "github.com/jhoicas/invorya-admin/internal/application/auth"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/permission"
)

// ErrDenied se devuelve cuando "can" responde que no.
var ErrDenied = errors.New("permiso denegado")

func newLoginCmd(open Opener) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Iniciar sesión contra la API de inventario",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := open(cmd)
			if err != nil {
				return err
			}
			if password == "" && env.Password != nil {
				if password, err = env.Password(); err != nil {
					return err
				}
			}
			st, err := env.Sessions.Login(cmd.Context(), Namespace, email, password)
			if err != nil {
				return err
			}
			printf(env, "Sesión iniciada como %s (%s)\n", st.Session.DisplayName, st.Session.Role)
			if st.Loading {
				printf(env, "Los permisos no se pudieron cargar; ejecute \"adminctl permissions --refresh\".\n")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "correo del usuario")
	cmd.Flags().StringVar(&password, "password", "", "contraseña (si se omite se pide por la terminal)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cerrar la sesión guardada",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := open(cmd)
			if err != nil {
				return err
			}
			if err := env.Sessions.Logout(cmd.Context(), Namespace); err != nil {
				return err
			}
			printf(env, "Sesión cerrada\n")
			return nil
		},
	}
}

func newWhoamiCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Mostrar el usuario de la sesión guardada",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, st, err := current(cmd, open)
			if err != nil {
				return err
			}
			s := st.Session
			printf(env, "Usuario:   %s <%s>\n", s.DisplayName, s.Email)
			printf(env, "Rol:       %s\n", s.Role)
			if s.AssignedLocationID != "" {
				printf(env, "Ubicación: %s\n", s.AssignedLocationID)
			}
			if st.ExpiresAt != nil {
				printf(env, "Expira:    %s\n", st.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
			}
			if st.Loading {
				printf(env, "Permisos:  cargando\n")
			}
			return nil
		},
	}
}

func newCanCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "can <modulo.accion>",
		Short: "Responder si la sesión tiene un permiso",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, st, err := current(cmd, open)
			if err != nil {
				return err
			}
			if st.Loading {
				return domain.ErrSessionLoading
			}
			if permission.For(st.Session).HasPermission(args[0]) {
				printf(env, "sí\n")
				return nil
			}
			printf(env, "no\n")
			return ErrDenied
		},
	}
}

func newPermissionsCmd(open Opener) *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "Listar los permisos y capacidades por módulo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, st, err := current(cmd, open)
			if err != nil {
				return err
			}
			if refresh || st.Loading {
				if _, err := env.Sessions.LoadPermissions(cmd.Context(), Namespace); err != nil {
					return err
				}
				if st, err = env.Sessions.Hydrate(cmd.Context(), Namespace); err != nil {
					return err
				}
			}
			r := permission.For(st.Session)
			tokens := make([]string, 0, len(st.Session.Permissions))
			for tok := range st.Session.Permissions {
				tokens = append(tokens, tok)
			}
			sort.Strings(tokens)
			if r.IsAdmin() {
				printf(env, "admin: acceso total\n")
			} else {
				printf(env, "permisos: %s\n", strings.Join(tokens, ", "))
			}
			for _, m := range permission.AllModules {
				caps := r.Capabilities(m)
				printf(env, "%-12s %s\n", m, capsLine(caps))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "volver a consultar los permisos al backend")
	return cmd
}

// current hidrata la sesión y aplica la misma regla de expiración que el guard HTTP.
func current(cmd *cobra.Command, open Opener) (*Env, appauth.State, error) {
	env, err := open(cmd)
	if err != nil {
		return nil, appauth.State{}, err
	}
	st, err := env.Sessions.Hydrate(cmd.Context(), Namespace)
	if err != nil {
		return nil, appauth.State{}, err
	}
	if !st.Authenticated() {
		return nil, appauth.State{}, domain.ErrNoSession
	}
	if env.Sessions.Expired(st, env.Now()) {
		if err := env.Sessions.Clear(cmd.Context(), Namespace); err != nil {
			return nil, appauth.State{}, err
		}
		return nil, appauth.State{}, domain.ErrSessionExpired
	}
	return env, st, nil
}

func capsLine(c permission.Capabilities) string {
	mark := func(ok bool, letter string) string {
		if ok {
			return letter
		}
		return "-"
	}
	return mark(c.View, "v") + mark(c.Create, "c") + mark(c.Edit, "e") + mark(c.Delete, "d")
}

// promptPassword pide la contraseña sin eco si stdin es una terminal; si no, lee una línea.
func promptPassword(cmd *cobra.Command) func() (string, error) {
	return func() (string, error) {
		fd := int(os.Stdin.Fd())
		if term.IsTerminal(fd) {
			_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Contraseña: ")
			raw, err := term.ReadPassword(fd)
			_, _ = fmt.Fprintln(cmd.ErrOrStderr())
			if err != nil {
				return "", fmt.Errorf("leer contraseña: %w", err)
			}
			return string(raw), nil
		}
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("leer contraseña: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}
