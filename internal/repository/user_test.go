package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/entrada-events/checkin-api/internal/repository/dao"
)

type fakeUserDAO struct {
	users []dao.User
}

func (f *fakeUserDAO) Insert(_ context.Context, user dao.User) (dao.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return dao.User{}, dao.ErrUserEmailExists
		}
		if u.EntryCode == user.EntryCode {
			return dao.User{}, dao.ErrUserEntryCodeExists
		}
	}

	user.ID = uint(len(f.users) + 1)
	f.users = append(f.users, user)

	return user, nil
}

func (f *fakeUserDAO) FindByID(_ context.Context, id uint) (dao.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}

	return dao.User{}, dao.ErrUserNotFound
}

func (f *fakeUserDAO) FindByEmail(_ context.Context, email string) (dao.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}

	return dao.User{}, dao.ErrUserNotFound
}

func (f *fakeUserDAO) FindByEntryCode(_ context.Context, code string) (dao.User, error) {
	for _, u := range f.users {
		if u.EntryCode == code {
			return u, nil
		}
	}

	return dao.User{}, dao.ErrUserNotFound
}

func (f *fakeUserDAO) List(_ context.Context, offset, limit int) ([]dao.User, error) {
	if offset >= len(f.users) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.users) {
		end = len(f.users)
	}

	return f.users[offset:end], nil
}

func (f *fakeUserDAO) Count(context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserDAO) Update(_ context.Context, user dao.User) (dao.User, error) {
	for i, u := range f.users {
		if u.ID == user.ID {
			f.users[i] = user
			return user, nil
		}
	}

	return dao.User{}, dao.ErrUserNotFound
}

func (f *fakeUserDAO) TouchEntryTime(_ context.Context, id uint, at time.Time) (dao.User, error) {
	for i, u := range f.users {
		if u.ID == id {
			f.users[i].EntryTime = &at
			return f.users[i], nil
		}
	}

	return dao.User{}, dao.ErrUserNotFound
}

func (f *fakeUserDAO) Delete(_ context.Context, id uint) error {
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}

	return dao.ErrUserNotFound
}

func TestFindByIdentifier(t *testing.T) {
	t.Parallel()

	newRepo := func() *UserRepository {
		return NewUserRepository(&fakeUserDAO{users: []dao.User{
			{ID: 7, Email: "alice@example.com", EntryCode: "AB12CD34"},
			{ID: 8, Email: "bob@example.com", EntryCode: "12345678"},
		}})
	}

	t.Run("numeric identifier matches id first", func(t *testing.T) {
		repo := newRepo()

		user, err := repo.FindByIdentifier(context.Background(), "7")
		require.NoError(t, err)
		require.Equal(t, uint(7), user.ID)
	})

	t.Run("numeric identifier falls through to entry code on id miss", func(t *testing.T) {
		repo := newRepo()

		user, err := repo.FindByIdentifier(context.Background(), "12345678")
		require.NoError(t, err)
		require.Equal(t, uint(8), user.ID)
	})

	t.Run("email identifier matches email", func(t *testing.T) {
		repo := newRepo()

		user, err := repo.FindByIdentifier(context.Background(), "bob@example.com")
		require.NoError(t, err)
		require.Equal(t, uint(8), user.ID)
	})

	t.Run("entry code matches case-insensitively", func(t *testing.T) {
		repo := newRepo()

		user, err := repo.FindByIdentifier(context.Background(), "ab12cd34")
		require.NoError(t, err)
		require.Equal(t, uint(7), user.ID)
	})

	t.Run("unknown identifier yields not found", func(t *testing.T) {
		repo := newRepo()

		_, err := repo.FindByIdentifier(context.Background(), "nobody@example.com")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestFindByEntryCode(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(&fakeUserDAO{users: []dao.User{
		{ID: 7, Email: "alice@example.com", EntryCode: "AB12CD34"},
	}})

	user, err := repo.FindByEntryCode(context.Background(), "ab12cd34")
	require.NoError(t, err)
	require.Equal(t, uint(7), user.ID)
}

func TestUserList(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(&fakeUserDAO{users: []dao.User{
		{ID: 1, Email: "a@example.com", EntryCode: "AAAA1111"},
		{ID: 2, Email: "b@example.com", EntryCode: "BBBB2222"},
		{ID: 3, Email: "c@example.com", EntryCode: "CCCC3333"},
	}})

	users, total, err := repo.List(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, users, 2)
	require.Equal(t, uint(2), users[0].ID)
}
