package idgen_test

import (
	"bytes"
	"errors"
	"regexp"
	"testing"

	"github.com/jrsteele09/go-oauth-tokens/token/idgen"
	"github.com/stretchr/testify/require"
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]+$`)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestGenerator_Secure(t *testing.T) {
	g := idgen.New(nil)
	require.Equal(t, idgen.TierSecure, g.Tier())
	require.False(t, g.Degraded())

	for length := 32; length <= 128; length += 8 {
		id, err := g.Generate(length)
		require.NoError(t, err)
		require.Len(t, id, length)
		require.Regexp(t, hexPattern, id)
	}
}

func TestGenerator_OddLength(t *testing.T) {
	id, err := idgen.New(nil).Generate(33)
	require.NoError(t, err)
	require.Len(t, id, 33)
	require.Regexp(t, hexPattern, id)
}

func TestGenerator_UsesInjectedSource(t *testing.T) {
	src := bytes.NewReader(bytes.Repeat([]byte{0xab}, 16))
	id, err := idgen.New(src).Generate(32)
	require.NoError(t, err)
	require.Equal(t, "abababababababababababababababab", id)
}

func TestGenerator_SourceFailure(t *testing.T) {
	_, err := idgen.New(failingReader{}).Generate(64)
	require.Error(t, err)
	require.Contains(t, err.Error(), "entropy exhausted")
}

func TestGenerator_InvalidLength(t *testing.T) {
	_, err := idgen.New(nil).Generate(0)
	require.Error(t, err)
}

func TestGenerator_Degraded(t *testing.T) {
	g := idgen.NewDegraded(1, 2)
	require.True(t, g.Degraded())
	require.Equal(t, idgen.TierDegraded, g.Tier())

	seen := make(map[string]struct{})
	for length := 32; length <= 128; length += 8 {
		id, err := g.Generate(length)
		require.NoError(t, err)
		require.Len(t, id, length)
		require.Regexp(t, hexPattern, id)
		seen[id] = struct{}{}
	}
	require.Len(t, seen, 13)
}

func TestGenerator_DegradedIsDeterministicPerSeed(t *testing.T) {
	a, err := idgen.NewDegraded(7, 9).Generate(64)
	require.NoError(t, err)
	b, err := idgen.NewDegraded(7, 9).Generate(64)
	require.NoError(t, err)
	require.Equal(t, a, b)
}
