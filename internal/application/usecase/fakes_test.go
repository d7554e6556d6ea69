package usecase

import (
	"context"
	"sync"

	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/repository"
)

type fakeCRUD[T any] struct {
	items   []T
	created []*T
	updated map[string]*T
	deleted []string
	err     error
	getByID func(id string) *T
}

func (f *fakeCRUD[T]) List(context.Context) ([]T, error) {
	return append([]T(nil), f.items...), f.err
}

func (f *fakeCRUD[T]) GetByID(_ context.Context, id string) (*T, error) {
	if f.getByID == nil {
		return nil, f.err
	}
	return f.getByID(id), f.err
}

func (f *fakeCRUD[T]) Create(_ context.Context, in *T) (*T, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, in)
	return in, nil
}

func (f *fakeCRUD[T]) Update(_ context.Context, id string, in *T) (*T, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.updated == nil {
		f.updated = map[string]*T{}
	}
	f.updated[id] = in
	return in, nil
}

func (f *fakeCRUD[T]) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeUsers struct {
	users   map[string]entity.User
	created *repository.UserPayload
	updated *repository.UserPayload
	perms   map[string][]string
}

func (f *fakeUsers) List(context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUsers) Create(_ context.Context, in *repository.UserPayload) (*entity.User, error) {
	f.created = in
	u := in.User
	u.ID = "u-new"
	return &u, nil
}

func (f *fakeUsers) Update(_ context.Context, id string, in *repository.UserPayload) (*entity.User, error) {
	f.updated = in
	u := in.User
	return &u, nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUsers) SetPermissions(_ context.Context, id string, perms []string) error {
	if f.perms == nil {
		f.perms = map[string][]string{}
	}
	f.perms[id] = perms
	return nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	modules []string
}

func (n *recordingNotifier) Refresh(module string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.modules = append(n.modules, module)
}

func sessionFor(role, location string, perms ...string) *entity.Session {
	return &entity.Session{UserID: "u-1", Role: role, AssignedLocationID: location, Permissions: entity.NewPermissionSet(perms)}
}
