package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/repository"
	"github.com/jhoicas/invorya-admin/pkg/jwt"
	"github.com/jhoicas/invorya-admin/pkg/logger"
)

// State es la sesión tal como quedó en el almacenamiento del cliente.
// Session nil significa "sin sesión". Loading es verdadero cuando hay sesión pero
// la lista de permisos todavía no se cargó.
type State struct {
	Session   *entity.Session
	Token     string
	ExpiresAt *time.Time
	Loading   bool
}

// Authenticated indica si hay token y usuario.
func (s State) Authenticated() bool {
	return s.Session != nil && s.Token != ""
}

// Options configuración del gestor de sesión.
type Options struct {
	// CheckExpiry compara auth-exp con el reloj local en cada ruta protegida.
	CheckExpiry bool
}

// SessionManager es el único contexto de autenticación: lee y escribe las claves de sesión
// del cliente y habla con el backend para login, permisos y logout.
type SessionManager struct {
	storage ports.Storage
	auth    repository.AuthRepository
	opts    Options
	log     *logger.Logger
	now     func() time.Time
}

// NewSessionManager construye el gestor.
func NewSessionManager(storage ports.Storage, auth repository.AuthRepository, opts Options, log *logger.Logger) *SessionManager {
	if log == nil {
		log = logger.Nop()
	}
	return &SessionManager{storage: storage, auth: auth, opts: opts, log: log.Named("session"), now: time.Now}
}

// Hydrate reconstruye el estado desde el almacenamiento. Un user-data ilegible cuenta como sin sesión.
func (m *SessionManager) Hydrate(ctx context.Context, namespace string) (State, error) {
	token, _, err := m.storage.Get(ctx, namespace, ports.KeyAuthToken)
	if err != nil {
		return State{}, fmt.Errorf("session: leer token: %w", err)
	}
	rawUser, _, err := m.storage.Get(ctx, namespace, ports.KeyUserData)
	if err != nil {
		return State{}, fmt.Errorf("session: leer usuario: %w", err)
	}
	if token == "" || rawUser == "" {
		return State{}, nil
	}
	var snap entity.UserSnapshot
	if err := json.Unmarshal([]byte(rawUser), &snap); err != nil {
		m.log.Warn().Err(err).Str("namespace", namespace).Msg("user-data ilegible, se ignora la sesión")
		return State{}, nil
	}

	st := State{Token: token, Session: &entity.Session{
		UserID:             snap.ID,
		DisplayName:        snap.Name,
		Email:              snap.Email,
		Role:               entity.NormalizeRole(snap.Role),
		AssignedLocationID: snap.LocationID,
	}}

	if rawExp, ok, err := m.storage.Get(ctx, namespace, ports.KeyAuthExp); err != nil {
		return State{}, fmt.Errorf("session: leer expiración: %w", err)
	} else if ok {
		if secs, perr := strconv.ParseInt(strings.TrimSpace(rawExp), 10, 64); perr == nil {
			exp := time.Unix(secs, 0)
			st.ExpiresAt = &exp
		}
	}

	rawPerms, ok, err := m.storage.Get(ctx, namespace, ports.KeyPermissions)
	if err != nil {
		return State{}, fmt.Errorf("session: leer permisos: %w", err)
	}
	var perms []string
	if ok && json.Unmarshal([]byte(rawPerms), &perms) == nil {
		st.Session.Permissions = entity.NewPermissionSet(perms)
	}
	st.Loading = !st.Session.PermissionsLoaded()
	return st, nil
}

// Expired indica si la expiración guardada ya pasó (comparación estricta).
// Sin expiración conocida, o con la verificación desactivada, nunca vence.
func (m *SessionManager) Expired(st State, now time.Time) bool {
	if !m.opts.CheckExpiry || st.ExpiresAt == nil {
		return false
	}
	return st.ExpiresAt.Unix() < now.Unix()
}

// CheckExpiry expone la configuración para el guard.
func (m *SessionManager) CheckExpiry() bool { return m.opts.CheckExpiry }

// Login autentica contra el backend, persiste token, usuario y expiración y luego carga permisos.
// Si la carga de permisos falla la sesión queda en estado Loading y el login igual se considera exitoso.
func (m *SessionManager) Login(ctx context.Context, namespace, email, password string) (State, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return State{}, fmt.Errorf("email y contraseña son obligatorios: %w", domain.ErrInvalidInput)
	}
	res, err := m.auth.Login(ports.WithNamespace(ctx, namespace), email, password)
	if err != nil {
		return State{}, err
	}

	if err := m.Clear(ctx, namespace); err != nil {
		return State{}, err
	}
	if res.User.Email == "" {
		res.User.Email = email
	}
	if err := m.storage.Set(ctx, namespace, ports.KeyAuthToken, res.Token); err != nil {
		return State{}, fmt.Errorf("session: guardar token: %w", err)
	}
	rawUser, err := json.Marshal(res.User)
	if err != nil {
		return State{}, fmt.Errorf("session: serializar usuario: %w", err)
	}
	if err := m.storage.Set(ctx, namespace, ports.KeyUserData, string(rawUser)); err != nil {
		return State{}, fmt.Errorf("session: guardar usuario: %w", err)
	}
	if exp, ok := m.expiryOf(res); ok {
		if err := m.storage.Set(ctx, namespace, ports.KeyAuthExp, strconv.FormatInt(exp.Unix(), 10)); err != nil {
			return State{}, fmt.Errorf("session: guardar expiración: %w", err)
		}
	}
	m.log.Info().Str("namespace", namespace).Str("user_id", res.User.ID).Str("role", res.User.Role).Msg("login")

	if _, err := m.LoadPermissions(ctx, namespace); err != nil {
		m.log.Warn().Err(err).Str("namespace", namespace).Msg("no se pudieron cargar los permisos tras el login")
	}
	return m.Hydrate(ctx, namespace)
}

// expiryOf toma expiresAt de la respuesta o, en su defecto, el claim exp del JWT.
func (m *SessionManager) expiryOf(res *repository.LoginResult) (time.Time, bool) {
	if res.ExpiresAt != nil && !res.ExpiresAt.IsZero() {
		return *res.ExpiresAt, true
	}
	exp, ok, err := jwt.ExpiresAt(res.Token)
	if err != nil {
		m.log.Debug().Err(err).Msg("token sin claims legibles, no se guarda expiración")
		return time.Time{}, false
	}
	return exp, ok
}

// LoadPermissions consulta y persiste la lista de permisos del token actual.
func (m *SessionManager) LoadPermissions(ctx context.Context, namespace string) ([]string, error) {
	perms, err := m.auth.Permissions(ports.WithNamespace(ctx, namespace))
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(perms)
	if err != nil {
		return nil, fmt.Errorf("session: serializar permisos: %w", err)
	}
	if err := m.storage.Set(ctx, namespace, ports.KeyPermissions, string(raw)); err != nil {
		return nil, fmt.Errorf("session: guardar permisos: %w", err)
	}
	return perms, nil
}

// EnsurePermissions carga permisos solo si la sesión está en estado Loading.
// Devuelve el estado actualizado; si la carga falla el estado sigue en Loading.
func (m *SessionManager) EnsurePermissions(ctx context.Context, namespace string, st State) (State, error) {
	if !st.Authenticated() || !st.Loading {
		return st, nil
	}
	perms, err := m.LoadPermissions(ctx, namespace)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return State{}, nil
		}
		return st, err
	}
	st.Session.Permissions = entity.NewPermissionSet(perms)
	st.Loading = false
	return st, nil
}

// Logout avisa al backend (sin importar el resultado) y limpia las claves de sesión.
func (m *SessionManager) Logout(ctx context.Context, namespace string) error {
	token, _, err := m.storage.Get(ctx, namespace, ports.KeyAuthToken)
	if err != nil {
		return fmt.Errorf("session: leer token: %w", err)
	}
	if token != "" {
		if err := m.auth.Logout(ports.WithNamespace(ctx, namespace)); err != nil {
			m.log.Warn().Err(err).Str("namespace", namespace).Msg("logout remoto falló, se limpia igual")
		}
	}
	return m.Clear(ctx, namespace)
}

// Clear borra auth-token, user-data, auth-exp y user-permissions. report-filters se conserva.
func (m *SessionManager) Clear(ctx context.Context, namespace string) error {
	if err := m.storage.Remove(ctx, namespace, ports.SessionKeys...); err != nil {
		return fmt.Errorf("session: limpiar: %w", err)
	}
	return nil
}
