package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		reqs []string
		want string
	}{
		{name: "empty", reqs: nil, want: ""},
		{name: "single", reqs: []string{"numpy>=1.20"}, want: "numpy>=1.20\n"},
		{name: "several", reqs: []string{"scipy", "mpi4py"}, want: "scipy\nmpi4py\n"},
		{name: "original spelling", reqs: []string{"Typing_Extensions[x] >= 4"}, want: "Typing_Extensions[x] >= 4\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Format(tt.reqs)))
		})
	}
}

func TestParseLines(t *testing.T) {
	data := []byte("# generated\nscipy\n\n  mpi4py  \n# trailing\n")

	assert.Equal(t, []string{"scipy", "mpi4py"}, ParseLines(data))
	assert.Empty(t, ParseLines(nil))
}

func TestParseLines_InvertsFormat(t *testing.T) {
	reqs := []string{"numpy>=1.20", "scipy", "mpi4py"}

	assert.Equal(t, reqs, ParseLines(Format(reqs)))
}
