package auth

import (
	"strings"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap parameters keep the suite fast
var testParams = HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	t.Parallel()
	h := NewPasswordHasher(testParams)

	for _, pw := range []string{"pw1", "correct horse battery staple", "пароль", " "} {
		hash, err := h.Hash(pw)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"), hash)

		for i := 0; i < 2; i++ {
			ok, err := h.Verify(hash, pw)
			require.NoError(t, err)
			assert.True(t, ok, "verify %q attempt %d", pw, i)
		}

		ok, err := h.Verify(hash, pw+"x")
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestPasswordHasher_RandomSalt(t *testing.T) {
	t.Parallel()
	h := NewPasswordHasher(testParams)

	first, err := h.Hash("same")
	require.NoError(t, err)
	second, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	for _, hash := range []string{first, second} {
		ok, err := h.Verify(hash, "same")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestPasswordHasher_VerifyUsesEncodedParams(t *testing.T) {
	t.Parallel()
	hash, err := NewPasswordHasher(testParams).Hash("pw")
	require.NoError(t, err)

	// a hasher configured differently still honours the stored parameters
	ok, err := NewPasswordHasher(DefaultHashParams).Verify(hash, "pw")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	t.Parallel()
	h := NewPasswordHasher(testParams)

	cases := map[string]string{
		"empty":        "",
		"plain":        "not-a-hash",
		"bcrypt":       "$2a$10$abcdefghijklmnopqrstuuABCDEFGHIJKLMNOPQRSTUVWXYZ01234",
		"argon2i":      "$argon2i$v=19$m=1024,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5",
		"bad version":  "$argon2id$v=16$m=1024,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5",
		"bad params":   "$argon2id$v=19$m=x,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5",
		"zero memory":  "$argon2id$v=19$m=0,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5",
		"zero time":    "$argon2id$v=19$m=1024,t=0,p=1$c2FsdHNhbHQ$a2V5a2V5",
		"zero threads": "$argon2id$v=19$m=1024,t=1,p=0$c2FsdHNhbHQ$a2V5a2V5",
		"bad key":      "$argon2id$v=19$m=1024,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5!",
		"bad salt":     "$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5a2V5",
		"missing key":  "$argon2id$v=19$m=1024,t=1,p=1$c2FsdHNhbHQ$",
		"extra fields": "$argon2id$v=19$m=1024,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5$more",
	}
	for name, encoded := range cases {
		t.Run(name, func(t *testing.T) {
			ok, err := h.Verify(encoded, "pw")
			assert.ErrorIs(t, err, ErrMalformedHash)
			assert.False(t, ok)
		})
	}
}

func TestPasswordHasher_ReadsLibraryHashes(t *testing.T) {
	t.Parallel()
	hash, err := argon2id.CreateHash("pw", &argon2id.Params{Memory: 2048, Iterations: 2, Parallelism: 2, SaltLength: 8, KeyLength: 16})
	require.NoError(t, err)

	h := NewPasswordHasher(testParams)
	ok, err := h.Verify(hash, "pw")
	require.NoError(t, err)
	assert.True(t, ok)

	ours, err := h.Hash("pw")
	require.NoError(t, err)
	params, salt, key, err := argon2id.DecodeHash(ours)
	require.NoError(t, err)
	assert.Equal(t, testParams.Memory, params.Memory)
	assert.Equal(t, testParams.Iterations, params.Iterations)
	assert.Equal(t, testParams.Parallelism, params.Parallelism)
	assert.Len(t, salt, int(testParams.SaltLength))
	assert.Len(t, key, int(testParams.KeyLength))
}
