package buffers

import (
	"github.com/bloeys/learngl/assert"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// BufUsage is a hint to the driver about how often buffer contents change.
// See: https://registry.khronos.org/OpenGL-Refpages/gl4/html/glBufferData.xhtml
type BufUsage int

const (
	BufUsage_Unknown BufUsage = iota

	// Set once, drawn many times. Used for all mesh data
	BufUsage_Static_Draw
	// Changed a lot and drawn many times
	BufUsage_Dynamic_Draw
	// Set once and drawn at most a few times
	BufUsage_Stream_Draw
)

func (b BufUsage) ToGL() uint32 {

	switch b {
	case BufUsage_Static_Draw:
		return gl.STATIC_DRAW
	case BufUsage_Dynamic_Draw:
		return gl.DYNAMIC_DRAW
	case BufUsage_Stream_Draw:
		return gl.STREAM_DRAW
	}

	assert.T(false, "Unexpected BufUsage value '%d'", b)
	return 0
}

func (b BufUsage) String() string {

	switch b {
	case BufUsage_Static_Draw:
		return "StaticDraw"
	case BufUsage_Dynamic_Draw:
		return "DynamicDraw"
	case BufUsage_Stream_Draw:
		return "StreamDraw"
	default:
		return "Unknown"
	}
}
