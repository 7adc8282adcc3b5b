package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "assets_serial_number_key",
	}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unique violation", unique, true},
		{"wrapped unique violation", fmt.Errorf("insert asset: %w", unique), true},
		{"other pg error", &pgconn.PgError{Code: "23503"}, false},
		{"code in message only", errors.New("constraint 23505 mentioned in passing"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}
