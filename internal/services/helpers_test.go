package services

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yukikurage/legal-case-api/internal/models"
	"github.com/yukikurage/legal-case-api/internal/repository"
	"github.com/yukikurage/legal-case-api/internal/token"
)

func setupRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	repos, err := repository.NewFileRepositories(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return repos
}

func setupAuthService(t *testing.T, repos *repository.Repositories) (*AuthService, *token.Authority) {
	t.Helper()
	authority, err := token.NewAuthority("test-secret", 24*time.Hour)
	require.NoError(t, err)
	svc, err := NewAuthService(repos.Users, authority, bcrypt.MinCost)
	require.NoError(t, err)
	return svc, authority
}

func createCase(t *testing.T, repos *repository.Repositories, ownerID, title string) *models.Case {
	t.Helper()
	c, err := NewCaseService(repos.Cases).CreateCase(context.Background(), ownerID, title)
	require.NoError(t, err)
	return c
}

// memoryStore is an in-memory ObjectStore.
type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	putErr  error
	listErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memoryStore) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	if m.putErr != nil {
		return m.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	m.types[key] = contentType
	return nil
}

func (m *memoryStore) List(_ context.Context, prefix string) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := []string{}
	for key := range m.objects {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

type stubResponder struct {
	reply   string
	err     error
	prompts []ChatPrompt
}

func (s *stubResponder) Respond(_ context.Context, prompt ChatPrompt) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}
