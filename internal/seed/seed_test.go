package seed

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/config"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/auth"
)

type memoryAdmins struct {
	byName  map[string]*models.Admin
	created int
	updated int
}

func (m *memoryAdmins) GetByUsername(_ context.Context, username string) (*models.Admin, error) {
	if a, ok := m.byName[username]; ok {
		return a, nil
	}
	return nil, apperrors.ErrResourceNotFound
}

func (m *memoryAdmins) Create(_ context.Context, username, hash string) (int64, error) {
	m.created++
	m.byName[username] = &models.Admin{ID: int64(len(m.byName) + 1), Username: username, PasswordHash: hash}
	return int64(len(m.byName)), nil
}

func (m *memoryAdmins) UpdatePassword(_ context.Context, id int64, hash string) error {
	m.updated++
	for _, a := range m.byName {
		if a.ID == id {
			a.PasswordHash = hash
		}
	}
	return nil
}

func TestCreateDefaultAdmin_CreatesOnceWithoutLoggingSecrets(t *testing.T) {
	store := &memoryAdmins{byName: map[string]*models.Admin{}}
	var logs bytes.Buffer
	cfg := config.AdminConfig{Username: "admin", Password: "s3cret-pass"}

	require.NoError(t, CreateDefaultAdmin(context.Background(), store, cfg, zerolog.New(&logs)))
	require.NoError(t, CreateDefaultAdmin(context.Background(), store, cfg, zerolog.New(&logs)))

	assert.Equal(t, 1, store.created)
	assert.Zero(t, store.updated)
	assert.True(t, auth.CheckPassword(store.byName["admin"].PasswordHash, "s3cret-pass"))
	assert.NotContains(t, logs.String(), "s3cret-pass")
	assert.NotContains(t, logs.String(), "$2a$")
}

func TestCreateDefaultAdmin_ForceReset(t *testing.T) {
	store := &memoryAdmins{byName: map[string]*models.Admin{
		"admin": {ID: 1, Username: "admin", PasswordHash: "$2a$12$old"},
	}}
	cfg := config.AdminConfig{Username: "admin", Password: "rotated-pass", ForceReset: true}

	require.NoError(t, CreateDefaultAdmin(context.Background(), store, cfg, zerolog.Nop()))
	assert.Equal(t, 1, store.updated)
	assert.True(t, auth.CheckPassword(store.byName["admin"].PasswordHash, "rotated-pass"))
}

func TestCreateDefaultAdmin_NoPasswordSkips(t *testing.T) {
	store := &memoryAdmins{byName: map[string]*models.Admin{}}

	require.NoError(t, CreateDefaultAdmin(context.Background(), store, config.AdminConfig{Username: "admin"}, zerolog.Nop()))
	assert.Zero(t, store.created)
}
