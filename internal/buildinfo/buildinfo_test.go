package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func stamp(t *testing.T, version, commit string) {
	t.Helper()
	v, c := Version, Commit
	t.Cleanup(func() { Version, Commit = v, c })
	Version, Commit = version, commit
}

func TestShort(t *testing.T) {
	stamp(t, "dev", "unknown")
	assert.Equal(t, "dev", Short())

	stamp(t, "dev", "0123456789abcdef")
	assert.Equal(t, "0123456789ab", Short())

	stamp(t, "v1.2.0", "0123456789abcdef")
	assert.Equal(t, "v1.2.0", Short())
}

func TestLong(t *testing.T) {
	stamp(t, "v1.2.0", "abc")
	assert.Contains(t, Long(), "v1.2.0 (commit abc")
}
