package services

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/dmitrijs2005/launcher/internal/logging"
	"github.com/dmitrijs2005/launcher/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountService(t *testing.T) *AccountService {
	t.Helper()
	return NewAccountService(nil, repomanager.NewInMemoryRepositoryManager(), logging.Nop{})
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	s := newAccountService(t)

	acc, err := s.Register(ctx, "1111", "1111aa", "1111aa")
	require.NoError(t, err)
	assert.NotEmpty(t, acc.ID)
	assert.NotContains(t, string(acc.Verifier), "1111aa")

	active, ok := s.Active()
	require.True(t, ok, "register logs the account in")
	assert.Equal(t, acc.ID, active.ID)

	s.Logout()
	_, ok = s.Active()
	assert.False(t, ok)

	got, err := s.Login(ctx, "1111", "1111aa", "1111aa")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)
}

func TestRegister_Duplicate(t *testing.T) {
	ctx := context.Background()
	s := newAccountService(t)

	_, err := s.Register(ctx, "1234", "keyword", "pass-one")
	require.NoError(t, err)

	// Same pin and keyword, different password: still the same account.
	_, err = s.Register(ctx, "1234", "keyword", "pass-two")
	assert.ErrorIs(t, err, common.ErrDuplicateAccount)
}

func TestRegister_ConcurrentDuplicate(t *testing.T) {
	s := newAccountService(t)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.Register(context.Background(), "4321", "race", "pw")
		}()
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, common.ErrDuplicateAccount)
	}
	assert.Equal(t, 1, ok)
}

func TestRegister_Malformed(t *testing.T) {
	s := newAccountService(t)
	cases := []struct{ pin, keyword, password string }{
		{"", "k", "p"},
		{"12a4", "k", "p"},
		{"12345678901234567", "k", "p"},
		{"1111", "", "p"},
		{"1111", "k", ""},
	}
	for _, c := range cases {
		_, err := s.Register(context.Background(), c.pin, c.keyword, c.password)
		assert.ErrorIs(t, err, common.ErrMalformedPayload, "%+v", c)
	}
}

func TestLogin_Invalid(t *testing.T) {
	ctx := context.Background()
	s := newAccountService(t)
	_, err := s.Register(ctx, "1111", "1111aa", "1111aa")
	require.NoError(t, err)
	s.Logout()

	for _, c := range []struct{ pin, keyword, password string }{
		{"1111", "1111aa", "wrong"},
		{"2222", "1111aa", "1111aa"},
		{"1111", "other", "1111aa"},
		{"", "", ""},
	} {
		_, err := s.Login(ctx, c.pin, c.keyword, c.password)
		assert.ErrorIs(t, err, common.ErrInvalidCredentials, "%+v", c)
	}
	_, ok := s.Active()
	assert.False(t, ok)
}

func TestLogin_PostgresBackend(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewAccountService(db, repomanager.NewPostgresRepositoryManager(), logging.Nop{})

	mock.ExpectQuery(regexp.QuoteMeta("FROM accounts")).
		WillReturnError(errors.New("conn refused"))

	_, err = s.Login(context.Background(), "1111", "1111aa", "1111aa")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrInvalidCredentials)
	require.NoError(t, mock.ExpectationsWereMet())
}
