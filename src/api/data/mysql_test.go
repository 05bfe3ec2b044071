package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureParam(t *testing.T) {
	tests := []struct {
		dsn, key, val, want string
	}{
		{"u:p@tcp(db:3306)/spycats", "parseTime", "true", "u:p@tcp(db:3306)/spycats?parseTime=true"},
		{"u:p@tcp(db:3306)/spycats?tls=true", "parseTime", "true", "u:p@tcp(db:3306)/spycats?tls=true&parseTime=true"},
		{"u:p@tcp(db:3306)/spycats?parseTime=false", "parseTime", "true", "u:p@tcp(db:3306)/spycats?parseTime=false"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ensureParam(tt.dsn, tt.key, tt.val))
	}
}

func TestBreedKey(t *testing.T) {
	assert.Equal(t, "breed:maine coon", breedKey("  Maine Coon "))
}
