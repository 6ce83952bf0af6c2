package service

import (
	"context"
	"strings"
	"testing"
	"time"
	"wings_cafe/internal/common"
	"wings_cafe/internal/common/security"
	"wings_cafe/internal/domain/model"
	"wings_cafe/internal/platform/config"

	"github.com/stretchr/testify/require"
)

// ---- fake user repository ----

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Username == user.Username {
			return common.Errorf("user with given username already exists: %w", common.ErrConflict)
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			found := *u
			return &found, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	found := *u
	return &found, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	var users []model.User
	for id := int64(1); id <= r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			users = append(users, *u)
		}
	}
	return users, nil
}

func initTestConfig(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: time.Hour,
	}
	security.InitJWT()
}

// ---- tests ----

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterRequest{Username: "", Password: "pw"})
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Register(context.Background(), RegisterRequest{Username: "alice", Password: ""})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	user, err := svc.Register(context.Background(), RegisterRequest{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)
	require.Empty(t, user.HashedPassword)

	stored := repo.users[user.ID]
	require.NotEqual(t, "s3cret", stored.HashedPassword)
	require.True(t, strings.HasPrefix(stored.HashedPassword, "$2"))
	require.True(t, security.CheckPasswordHash("s3cret", stored.HashedPassword))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{Username: "alice", Password: "other"})
	require.ErrorIs(t, err, common.ErrConflict)
}

func TestLogin(t *testing.T) {
	initTestConfig(t)
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	registered, err := svc.Register(context.Background(), RegisterRequest{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, registered.ID, resp.User.ID)
	require.Equal(t, "alice", resp.User.Username)
	require.Empty(t, resp.User.HashedPassword)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	initTestConfig(t)
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterRequest{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "nobody", Password: "s3cret"})
	require.ErrorIs(t, err, common.ErrUnauthorized)
	require.Nil(t, resp)

	resp, err = svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "wrong"})
	require.ErrorIs(t, err, common.ErrUnauthorized)
	require.Nil(t, resp)
}

func TestListUsersOmitsHashes(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), RegisterRequest{Username: "bob", Password: "pw"})
	require.NoError(t, err)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		require.Empty(t, u.HashedPassword)
	}
}
