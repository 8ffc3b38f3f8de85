package access

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/mamadbah2/farmledger/internal/domain/models"
	"github.com/mamadbah2/farmledger/internal/repository/memory"
)

type failingStore struct {
	err error
}

func (f failingStore) LoadSession(context.Context) (*models.Session, error) { return nil, f.err }
func (f failingStore) SaveSession(context.Context, models.Session) error    { return f.err }
func (f failingStore) ClearSession(context.Context) error                   { return f.err }

var admin = models.User{
	ID:       "1",
	Name:     "Administrator",
	Email:    "admin@fincapiza.com",
	Password: "admin123",
	Role:     models.RoleAdmin,
	Active:   true,
}

func boolPtr(v bool) *bool { return &v }

func newTestService(t *testing.T, users ...models.User) (*Service, *memory.SessionStore) {
	t.Helper()
	store := memory.NewSessionStore()
	if len(users) == 0 {
		users = []models.User{admin}
	}
	svc := NewService(store, users, nil)
	var seq int
	svc.newID = func() string {
		seq++
		return "u" + strconv.Itoa(seq)
	}
	return svc, store
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	inactive := models.User{ID: "2", Email: "old@farm.test", Password: "pw", Role: models.RoleUser}
	svc, store := newTestService(t, admin, inactive)

	tests := []struct {
		name     string
		email    string
		password string
		want     bool
	}{
		{"active user", admin.Email, admin.Password, true},
		{"wrong password", admin.Email, "nope", false},
		{"unknown email", "x@farm.test", admin.Password, false},
		{"inactive user", inactive.Email, inactive.Password, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Logout(ctx); err != nil {
				t.Fatalf("logout: %v", err)
			}
			ok, err := svc.Login(ctx, tc.email, tc.password)
			if err != nil {
				t.Fatalf("login: %v", err)
			}
			if ok != tc.want || svc.IsAuthenticated() != tc.want {
				t.Fatalf("login = %v authenticated = %v, want %v", ok, svc.IsAuthenticated(), tc.want)
			}
			session, _ := store.LoadSession(ctx)
			if (session != nil) != tc.want {
				t.Fatalf("persisted session = %+v, want present=%v", session, tc.want)
			}
		})
	}
}

func TestLoginSetsCurrentUserAndLogoutClears(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	if ok, _ := svc.Login(ctx, admin.Email, admin.Password); !ok {
		t.Fatalf("expected login")
	}
	user, ok := svc.CurrentUser()
	if !ok || user.ID != admin.ID {
		t.Fatalf("unexpected current user %+v", user)
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if svc.IsAuthenticated() {
		t.Fatalf("still authenticated")
	}
	if _, ok := svc.CurrentUser(); ok {
		t.Fatalf("current user not cleared")
	}
	if session, _ := store.LoadSession(ctx); session != nil {
		t.Fatalf("persisted session not cleared")
	}
}

func TestLoginStoreFailureLeavesStateUnchanged(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(failingStore{err: boom}, []models.User{admin}, nil)

	ok, err := svc.Login(context.Background(), admin.Email, admin.Password)
	if ok || !errors.Is(err, boom) {
		t.Fatalf("expected store error, got ok=%v err=%v", ok, err)
	}
	if svc.IsAuthenticated() {
		t.Fatalf("must not authenticate when the session cannot be saved")
	}
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()
	first := NewService(store, []models.User{admin}, nil)
	if ok, _ := first.Login(ctx, admin.Email, admin.Password); !ok {
		t.Fatalf("expected login")
	}

	second := NewService(store, []models.User{admin}, nil)
	if second.IsAuthenticated() {
		t.Fatalf("new service should start signed out")
	}
	if err := second.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !second.IsAuthenticated() {
		t.Fatalf("expected restored session")
	}
	if user, _ := second.CurrentUser(); user.Email != admin.Email {
		t.Fatalf("unexpected restored user %+v", user)
	}

	if err := NewService(failingStore{err: errors.New("down")}, nil, nil).Restore(ctx); err == nil {
		t.Fatalf("expected restore error")
	}
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	user, err := svc.CreateUser(ctx, models.UserForm{Name: "Ana", Email: "ana@farm.test", Password: "pw", Role: models.RoleUser, Active: boolPtr(true)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("unexpected id %q", user.ID)
	}

	_, err = svc.CreateUser(ctx, models.UserForm{Name: "Other", Email: "ana@farm.test", Role: models.RoleUser})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if len(svc.Users()) != 2 {
		t.Fatalf("duplicate must not be stored")
	}
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.UpdateUser(ctx, admin.ID, models.UserForm{Name: "Admin", Email: admin.Email, Role: models.RoleUser, Active: boolPtr(true)})
	if !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}

	if _, err := svc.UpdateUser(ctx, "404", models.UserForm{Role: models.RoleUser}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if ok, _ := svc.Login(ctx, admin.Email, admin.Password); !ok {
		t.Fatalf("expected login")
	}
	updated, err := svc.UpdateUser(ctx, admin.ID, models.UserForm{Name: "Boss", Email: admin.Email, Role: models.RoleAdmin, Active: boolPtr(true)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Password != admin.Password {
		t.Fatalf("empty password must keep the stored one")
	}
	if current, _ := svc.CurrentUser(); current.Name != "Boss" {
		t.Fatalf("current user not refreshed: %+v", current)
	}
	if session, _ := store.LoadSession(ctx); session == nil || session.User.Name != "Boss" {
		t.Fatalf("persisted session not refreshed: %+v", session)
	}
}

func TestUpdateUserCannotDeactivateOnlyActiveAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	form := models.UserForm{Name: "Admin", Email: admin.Email, Role: models.RoleAdmin, Active: boolPtr(false)}
	if _, err := svc.UpdateUser(ctx, admin.ID, form); !errors.Is(err, ErrLastActiveAdmin) {
		t.Fatalf("expected ErrLastActiveAdmin, got %v", err)
	}
	if ok, _ := svc.Login(ctx, admin.Email, admin.Password); !ok {
		t.Fatalf("admin must still be able to sign in")
	}
}

func TestUpdateUserCannotDemoteOnlyActiveAdmin(t *testing.T) {
	ctx := context.Background()
	dormant := models.User{ID: "2", Name: "Dormant", Email: "dormant@farm.test", Role: models.RoleAdmin}
	svc, _ := newTestService(t, admin, dormant)

	form := models.UserForm{Name: "Admin", Email: admin.Email, Role: models.RoleUser}
	if _, err := svc.UpdateUser(ctx, admin.ID, form); !errors.Is(err, ErrLastActiveAdmin) {
		t.Fatalf("expected ErrLastActiveAdmin, got %v", err)
	}
}

func TestUpdateUserCannotDeactivateSelf(t *testing.T) {
	ctx := context.Background()
	second := models.User{ID: "2", Name: "Second", Email: "second@farm.test", Password: "pw", Role: models.RoleAdmin, Active: true}
	svc, _ := newTestService(t, admin, second)
	if ok, _ := svc.Login(ctx, admin.Email, admin.Password); !ok {
		t.Fatalf("expected login")
	}

	form := models.UserForm{Name: "Admin", Email: admin.Email, Role: models.RoleAdmin, Active: boolPtr(false)}
	if _, err := svc.UpdateUser(ctx, admin.ID, form); !errors.Is(err, ErrSelfDeactivation) {
		t.Fatalf("expected ErrSelfDeactivation, got %v", err)
	}
	if current, _ := svc.CurrentUser(); !current.Active {
		t.Fatalf("current user deactivated: %+v", current)
	}

	form = models.UserForm{Name: "Second", Email: second.Email, Role: models.RoleAdmin, Active: boolPtr(false)}
	u, err := svc.UpdateUser(ctx, second.ID, form)
	if err != nil || u.Active {
		t.Fatalf("expected other admin deactivated, got %+v %v", u, err)
	}
}

func TestUpdateUserWithoutActiveKeepsStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	u, err := svc.UpdateUser(ctx, admin.ID, models.UserForm{Name: "Renamed", Email: admin.Email, Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !u.Active || u.Name != "Renamed" {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestCreateUserDefaultsToActive(t *testing.T) {
	svc, _ := newTestService(t)
	u, err := svc.CreateUser(context.Background(), models.UserForm{Name: "Ana", Email: "ana@farm.test", Role: models.RoleUser})
	if err != nil || !u.Active {
		t.Fatalf("expected active user, got %+v %v", u, err)
	}
}

func TestUpdateUserRejectsEmailOfAnotherUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	worker, err := svc.CreateUser(ctx, models.UserForm{Name: "W", Email: "w@farm.test", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.UpdateUser(ctx, worker.ID, models.UserForm{Name: "W", Email: admin.Email, Role: models.RoleUser})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if _, err := svc.UpdateUser(ctx, worker.ID, models.UserForm{Name: "Worker", Email: worker.Email, Role: models.RoleUser}); err != nil {
		t.Fatalf("keeping the own email must succeed: %v", err)
	}
}

func TestDeactivateOnlyActiveAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	before := svc.Users()

	if _, err := svc.SetUserActive(ctx, admin.ID, false); !errors.Is(err, ErrLastActiveAdmin) {
		t.Fatalf("expected ErrLastActiveAdmin, got %v", err)
	}
	if _, err := svc.ToggleUserStatus(ctx, admin.ID); !errors.Is(err, ErrLastActiveAdmin) {
		t.Fatalf("expected ErrLastActiveAdmin from toggle, got %v", err)
	}

	after := svc.Users()
	if len(after) != len(before) || !after[0].Active {
		t.Fatalf("state changed after policy violation: %+v", after)
	}
}

func TestSelfDeactivationAndDeletion(t *testing.T) {
	ctx := context.Background()
	second := models.User{ID: "2", Name: "Second", Email: "second@farm.test", Password: "pw", Role: models.RoleAdmin, Active: true}
	svc, _ := newTestService(t, admin, second)

	if ok, _ := svc.Login(ctx, admin.Email, admin.Password); !ok {
		t.Fatalf("expected login")
	}
	if _, err := svc.SetUserActive(ctx, admin.ID, false); !errors.Is(err, ErrSelfDeactivation) {
		t.Fatalf("expected ErrSelfDeactivation, got %v", err)
	}
	if err := svc.DeleteUser(ctx, admin.ID); !errors.Is(err, ErrSelfDeletion) {
		t.Fatalf("expected ErrSelfDeletion, got %v", err)
	}

	u, err := svc.ToggleUserStatus(ctx, second.ID)
	if err != nil || u.Active {
		t.Fatalf("expected second admin deactivated, got %+v %v", u, err)
	}
	u, err = svc.ToggleUserStatus(ctx, second.ID)
	if err != nil || !u.Active {
		t.Fatalf("expected second admin reactivated, got %+v %v", u, err)
	}
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if err := svc.DeleteUser(ctx, admin.ID); !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}
	if err := svc.DeleteUser(ctx, "404"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	worker, _ := svc.CreateUser(ctx, models.UserForm{Name: "W", Email: "w@farm.test", Role: models.RoleUser, Active: boolPtr(true)})
	if err := svc.DeleteUser(ctx, worker.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(svc.Users()) != 1 {
		t.Fatalf("user not removed")
	}
}
