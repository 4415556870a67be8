package flag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// This test binary registers its own testing flags after this package's init
// runs. Reaching this function at all proves init leaves the command line
// unparsed; an init-time Parse would abort the binary on the testing flags
// before any test starts.
func TestDefaults(t *testing.T) {
	assert.True(t, *IsDevelopment)
	assert.Equal(t, APIServer, *ServiceName)
	assert.False(t, *ByPassAuth)
}

func TestParseFlags(t *testing.T) {
	// the testing package has already parsed by now, so this is a no-op
	// second parse; it must not panic or exit
	ParseFlags()
	assert.Equal(t, APIServer, *ServiceName)
}
