package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkipMinimizedFrameSleeps(t *testing.T) {

	var sleeps []uint32
	origSleep := sleep
	sleep = func(ms uint32) { sleeps = append(sleeps, ms) }
	t.Cleanup(func() { sleep = origSleep })

	tests := []struct {
		name          string
		width, height int32
		skip          bool
	}{
		{"normal", 800, 600, false},
		{"minimized", 0, 0, true},
		{"zero width", 0, 600, true},
		{"zero height", 800, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			sleeps = sleeps[:0]
			assert.Equal(t, tt.skip, skipMinimizedFrame(tt.width, tt.height))

			if tt.skip {
				assert.Equal(t, []uint32{minimizedFrameDelayMs}, sleeps)
			} else {
				assert.Empty(t, sleeps)
			}
		})
	}
}
