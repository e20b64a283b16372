package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func TestUserServiceList(t *testing.T) {
	t.Parallel()

	t.Run("projects users to refs", func(t *testing.T) {
		t.Parallel()

		users := []*domain.User{
			{ID: uuid.New(), Email: "a@example.com", Name: "Alice", HashedPassword: "hash-a"},
			{ID: uuid.New(), Email: "b@example.com", HashedPassword: "hash-b"},
		}
		svc, err := service.NewUserService(&mocks.MockUserStore{Users: users}, testLogger())
		require.NoError(t, err)

		refs, err := svc.List(context.Background())
		require.NoError(t, err)
		require.Len(t, refs, 2)

		assert.Equal(t, users[0].ID, refs[0].ID)
		assert.Equal(t, "a@example.com", refs[0].Email)
		assert.Equal(t, "Alice", refs[0].Name)
		assert.Empty(t, refs[1].Name)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		t.Parallel()

		svc, err := service.NewUserService(&mocks.MockUserStore{Err: store.ErrTransactionFailed}, testLogger())
		require.NoError(t, err)

		_, err = svc.List(context.Background())
		assert.ErrorIs(t, err, store.ErrTransactionFailed)
	})
}

func TestUserServiceGet(t *testing.T) {
	t.Parallel()

	t.Run("returns the profile projection", func(t *testing.T) {
		t.Parallel()

		user := &domain.User{ID: uuid.New(), Email: "a@example.com", Name: "Alice", HashedPassword: "hash"}
		svc, err := service.NewUserService(&mocks.MockUserStore{User: user}, testLogger())
		require.NoError(t, err)

		ref, err := svc.Get(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, ref.ID)
	})

	t.Run("missing user surfaces not found", func(t *testing.T) {
		t.Parallel()

		svc, err := service.NewUserService(&mocks.MockUserStore{Err: store.ErrUserNotFound}, testLogger())
		require.NoError(t, err)

		_, err = svc.Get(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}
