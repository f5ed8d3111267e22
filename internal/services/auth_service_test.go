package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Register(t *testing.T) {
	repos := setupRepos(t)
	svc, _ := setupAuthService(t, repos)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEqual(t, "pw1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")))

	_, err = svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw2"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// case-sensitive match
	_, err = svc.Register(ctx, RegisterInput{Email: "A@x.com", Password: "pw2"})
	assert.NoError(t, err)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _ := setupAuthService(t, setupRepos(t))
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: " ", Password: "pw"})
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Register(ctx, RegisterInput{Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestAuthService_HashesAreSalted(t *testing.T) {
	svc, _ := setupAuthService(t, setupRepos(t))
	ctx := context.Background()

	a, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "same"})
	require.NoError(t, err)
	b, err := svc.Register(ctx, RegisterInput{Email: "b@x.com", Password: "same"})
	require.NoError(t, err)
	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
}

func TestAuthService_ConcurrentDuplicateRegistration(t *testing.T) {
	svc, _ := setupAuthService(t, setupRepos(t))
	ctx := context.Background()

	const attempts = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Register(ctx, RegisterInput{Email: "race@x.com", Password: "pw"}); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, ErrEmailTaken)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
}

func TestAuthService_Login(t *testing.T) {
	repos := setupRepos(t)
	svc, authority := setupAuthService(t, repos)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	tok, user, err := svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	userID, err := authority.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	repos := setupRepos(t)
	svc, _ := setupAuthService(t, repos)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "nope"})
	_, _, unknownEmail := svc.Login(ctx, LoginInput{Email: "b@x.com", Password: "pw1"})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthService_GetUser(t *testing.T) {
	repos := setupRepos(t)
	svc, _ := setupAuthService(t, repos)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	user, err := svc.GetUser(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)

	_, err = svc.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
