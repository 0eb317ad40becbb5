package repo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDupKey(t *testing.T) {
	dup := []error{
		errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_username" (SQLSTATE 23505)`),
		errors.New("Error 1062 (23000): Duplicate entry 'alice' for key 'users.idx_users_username'"),
		errors.New("UNIQUE constraint failed: users.username"),
	}
	for _, err := range dup {
		assert.True(t, isDupKey(err), "%v", err)
	}

	notDup := []error{
		errors.New("connection refused"),
		errors.New("ERROR: relation \"users\" does not exist"),
	}
	for _, err := range notDup {
		assert.False(t, isDupKey(err), "%v", err)
	}
}
