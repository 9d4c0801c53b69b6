package roomkey

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveIsCommutative(t *testing.T) {
	pairs := [][2]string{
		{"a@x.com", "b@x.com"},
		{"alice@example.com", "bob@example.com"},
		{"z.z@mail.co.kr", "a.a@mail.co.kr"},
		{"same@x.com", "same@x.com"},
	}

	for _, p := range pairs {
		assert.Equal(t, Derive(p[0], p[1]), Derive(p[1], p[0]), "pair %v", p)
	}
}

func TestDeriveSanitizesIdentities(t *testing.T) {
	id := Derive("a@x.com", "b@x.com")

	assert.NotContains(t, id, "@")
	assert.NotContains(t, id, ".")
	assert.Equal(t, "a_at_x_dot_com_b_at_x_dot_com", id)
}

func TestDeriveOrdersSanitizedPair(t *testing.T) {
	// The sorted order is over the sanitized strings, not the raw emails.
	id := Derive("b@x.com", "a@x.com")
	assert.True(t, strings.HasPrefix(id, "a_at_"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "user_dot_name_at_mail_dot_com", Sanitize("user.name@mail.com"))
	assert.Equal(t, "plain", Sanitize("plain"))
}
