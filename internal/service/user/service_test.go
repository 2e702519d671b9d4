package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinoosan/smartbudget/internal/errs"
	"github.com/tinoosan/smartbudget/internal/service/user"
	"github.com/tinoosan/smartbudget/internal/storage/memory"
	"golang.org/x/crypto/bcrypt"
)

func newService() user.Service {
	store := memory.New()
	return user.NewWithCost(store, store, bcrypt.MinCost)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	u, err := svc.Register(ctx, " Ana ", "  Ana@Example.COM ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.NotEqual(t, "s3cret", u.PasswordHash)

	got, err := svc.Authenticate(ctx, "ANA@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	_, err = svc.Authenticate(ctx, "bob@example.com", "s3cret")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	me, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, me.Email)
	_, err = svc.Get(ctx, uuid.Nil)
	assert.ErrorIs(t, err, errs.ErrInvalid)
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	_, err := svc.Register(ctx, "", "a@b.c", "1234")
	assert.ErrorIs(t, err, errs.ErrInvalid)
	_, err = svc.Register(ctx, "A", "not-an-email", "1234")
	assert.ErrorIs(t, err, errs.ErrInvalid)
	_, err = svc.Register(ctx, "A", "a@b.c", "123")
	assert.ErrorIs(t, err, errs.ErrInvalid)

	_, err = svc.Register(ctx, "A", "a@b.c", "1234")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "B", "A@B.C", "abcd")
	assert.ErrorIs(t, err, errs.ErrConflict)
}
