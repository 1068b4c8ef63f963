package validator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidWord(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"hello", true},
		{"  Hello  ", true},
		{"don't", true},
		{"'tis", true},
		{"well-known", true},
		{"etc.", true},
		{"a", false},
		{"", false},
		{"abcdefghijabcdefghijabcdefghijabcdefghijabcdefghijk", false},
		{"café", false},
		{"it’s", false},
		{"hello world", false},
		{"a1", false},
		{"-ing", false},
		{".com", false},
		{"pre-", false},
		{"a--b", false},
		{"wait..", false},
		{"rock''n", false},
		{"ab-'.c", false},
		{"e.g.", false},
		{"u.s.a", false},
		{"a.'", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidWord(tt.word))
		})
	}
}

func TestFilterValidWords(t *testing.T) {
	got := FilterValidWords([]string{"Hello", "hello", "x", "world", "e.g.", " World "})
	assert.Equal(t, []string{"hello", "world"}, got)
}

func TestNormalizeWord(t *testing.T) {
	assert.Equal(t, "hello", NormalizeWord("  HeLLo\n"))
}

func TestReadWordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("ant\n\n  bee \ncat\n"), 0o644))

	words, err := ReadWordList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ant", "bee", "cat"}, words)

	_, err = ReadWordList(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestIsPersonName(t *testing.T) {
	assert.True(t, IsPersonName("Ada Lovelace"))
	assert.True(t, IsPersonName("José"))
	assert.False(t, IsPersonName("R2D2"))
	assert.False(t, IsPersonName("   "))
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("Secret1"))
	assert.False(t, IsStrongPassword("secret1"))
	assert.False(t, IsStrongPassword("SECRET1"))
	assert.False(t, IsStrongPassword("Secrets"))
}

type signupForm struct {
	Name     string `binding:"required,min=2,max=100,personname"`
	Password string `binding:"required,min=6,max=100,strongpassword"`
	Word     string `binding:"omitempty,headword"`
}

func TestRegisterBindings(t *testing.T) {
	require.NoError(t, RegisterBindings())
	require.NoError(t, RegisterBindings())

	ok := signupForm{Name: "Ada", Password: "Secret1", Word: "hello"}
	assert.NoError(t, binding.Validator.ValidateStruct(&ok))

	bad := signupForm{Name: "A1", Password: "weak", Word: "e.g."}
	err := binding.Validator.ValidateStruct(&bad)
	require.Error(t, err)

	msgs := Messages(err)
	assert.Contains(t, msgs, "name may only contain letters and spaces")
	assert.Contains(t, msgs, "password must be at least 6 characters")
	assert.Contains(t, msgs, "word is not a valid word")
}
