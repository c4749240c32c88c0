package users_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdxmph/user-manager-tui/internal/users"
)

func TestNew_SetsFields(t *testing.T) {
	u := users.New("John", "Doe", "john.doe@example.com")

	assert.Equal(t, "John", u.FirstName())
	assert.Equal(t, "Doe", u.LastName())
	assert.Equal(t, "john.doe@example.com", u.Email())
}

func TestString_Formatted(t *testing.T) {
	u := users.New("Jane", "Smith", "jane.smith@test.com")

	assert.Equal(t, "Jane Smith - jane.smith@test.com", u.String())
}

func TestUser_ValueEquality(t *testing.T) {
	a := users.New("Jane", "Smith", "jane@test.com")
	b := users.New("Jane", "Smith", "jane@test.com")

	assert.Equal(t, a, b)
	assert.True(t, a == b)
}
