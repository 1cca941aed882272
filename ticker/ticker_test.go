package ticker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTicker(t *testing.T) {
	tk := New()
	first := tk.GetAsMS()
	assert.True(t, first < 1000)

	time.Sleep(5 * time.Millisecond)
	assert.True(t, tk.Get() >= 5*time.Millisecond)
	assert.True(t, tk.GetAsMS() >= first+5)
}
