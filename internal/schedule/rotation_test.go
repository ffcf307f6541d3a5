package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvance_NilIndexStartsAtZero(t *testing.T) {
	members := []uint64{10, 20, 30}

	idx, id := Advance(members, nil)

	assert.Equal(t, 0, idx)
	assert.Equal(t, uint64(10), id)
}

func TestAdvance_StepsForward(t *testing.T) {
	members := []uint64{10, 20, 30}
	current := 0

	idx, id := Advance(members, &current)

	assert.Equal(t, 1, idx)
	assert.Equal(t, uint64(20), id)
}

func TestAdvance_WrapsCircularly(t *testing.T) {
	members := []uint64{10, 20, 30}
	current := 2

	idx, id := Advance(members, &current)

	assert.Equal(t, 0, idx)
	assert.Equal(t, uint64(10), id)
}

func TestAdvance_FullCycleReturnsToStart(t *testing.T) {
	members := []uint64{10, 20, 30, 40}
	start := 1

	idx := start
	for i := 0; i < len(members); i++ {
		idx, _ = Advance(members, &idx)
	}

	assert.Equal(t, start, idx)
}

func TestAdvance_SingleMember(t *testing.T) {
	members := []uint64{10}
	current := 0

	idx, id := Advance(members, &current)

	assert.Equal(t, 0, idx)
	assert.Equal(t, uint64(10), id)
}
