package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHex_KnownTag(t *testing.T) {
	assert.Equal(t, "#3B82F6", Hex("blue"))
}

func TestHex_UnknownTagFallsBack(t *testing.T) {
	assert.Equal(t, DefaultHex, Hex("chartreuse"))
	assert.Equal(t, DefaultHex, Hex(""))
}
