package userservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

const (
	legacyHashWithIterations = "pbkdf2:sha256:1000$Xy7aB9cD$054853a2810fa90e02f12d5ff6bd469a0b1dedce78c4a58c3664646438d1ffd2"
	legacyHashLongPassword   = "pbkdf2:sha256:1000$Xy7aB9cD$77efad4eebe746fbcb004d5e328f58cf568fde0bac534d2af73fa92f538fef3f"
	legacyHashDefault        = "pbkdf2:sha256$Xy7aB9cD$7f3c85e2685dc16305b59d2cbb06f8d34b7fd56078126735a4a08002778c14a6"
)

func TestPassword_SetCompare(t *testing.T) {
	var p Password
	err := p.set("hunter2")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter2", string(p.hash))

	cost, err := bcrypt.Cost(p.hash)
	assert.NoError(t, err)
	assert.Equal(t, passwordCost, cost)

	ok, err := p.compare("hunter2")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.compare("hunter3")
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.False(t, p.needsRehash())
}

func TestPassword_SameInputDifferentHash(t *testing.T) {
	var a, b Password
	assert.NoError(t, a.set("hunter2"))
	assert.NoError(t, b.set("hunter2"))
	assert.NotEqual(t, a.hash, b.hash)
}

func TestPassword_Legacy(t *testing.T) {
	testCases := []struct {
		name    string
		hash    string
		input   string
		want    bool
		wantErr bool
	}{
		{name: "explicit iterations", hash: legacyHashWithIterations, input: "hunter2", want: true},
		{name: "explicit iterations wrong password", hash: legacyHashWithIterations, input: "hunter3", want: false},
		{name: "default iterations", hash: legacyHashDefault, input: "hunter2", want: true},
		{name: "missing parts", hash: "pbkdf2:sha256$onlysalt", input: "hunter2", wantErr: true},
		{name: "bad iterations", hash: "pbkdf2:sha256:abc$salt$00", input: "hunter2", wantErr: true},
		{name: "bad digest", hash: "pbkdf2:sha256:1000$salt$zz", input: "hunter2", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := Password{hash: []byte(tc.hash)}
			assert.True(t, p.needsRehash())

			ok, err := p.compare(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestPassword_NeedsRehashLowCost(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	assert.NoError(t, err)

	p := Password{hash: hash}
	assert.True(t, p.needsRehash())
}
