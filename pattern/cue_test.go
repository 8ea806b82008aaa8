package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCue(t *testing.T) {
	tests := []struct {
		in   string
		want Cue
	}{
		{"clap", CueClap},
		{"CLAP", CueClap},
		{" primary ", CueClap},
		{"stomp", CueStomp},
		{"secondary", CueStomp},
	}
	for _, tt := range tests {
		got, err := ParseCue(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseCue("snap")
	assert.Error(t, err)
}

func TestCueString(t *testing.T) {
	assert.Equal(t, "clap", CueClap.String())
	assert.Equal(t, "stomp", CueStomp.String())
	assert.Equal(t, "cue(7)", Cue(7).String())
	assert.False(t, Cue(7).Valid())
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(nil, nil))
	assert.True(t, Equal([]Cue{CueClap, CueStomp}, []Cue{CueClap, CueStomp}))
	assert.False(t, Equal([]Cue{CueClap, CueStomp}, []Cue{CueStomp, CueClap}))
	assert.False(t, Equal([]Cue{CueClap}, []Cue{CueClap, CueClap}))
}
