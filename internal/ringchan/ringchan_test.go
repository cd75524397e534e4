package ringchan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSend_DropsOldestWhenFull(t *testing.T) {
	rc := New[int](3)
	for i := 0; i < 10; i++ {
		rc.Send(i)
	}
	rc.Close()

	var got []int
	for v := range rc.C() {
		got = append(got, v)
	}
	assert.Equal(t, []int{7, 8, 9}, got)
}

func TestTrySend(t *testing.T) {
	rc := New[string](1)

	assert.True(t, rc.TrySend("a"))
	assert.False(t, rc.TrySend("b"))
	assert.Equal(t, 1, rc.Len())
	assert.Equal(t, 1, rc.Cap())
}

func TestNew_InvalidCapacity(t *testing.T) {
	assert.Panics(t, func() { New[int](0) })
}
