package timing

import "time"

const avgFPSSampleCount = 60

var (
	now = time.Now

	startTime       time.Time
	frameStartTime  time.Time
	dt              float32
	frameTimeSum    float32
	frameTimes      [avgFPSSampleCount]float32
	frameTimesIndex int
	frameTimesCount int
)

// Init resets all timing state and makes 'now' the start of time
func Init() {
	startTime = now()
	frameStartTime = startTime
	dt = 0.01

	frameTimeSum = 0
	frameTimes = [avgFPSSampleCount]float32{}
	frameTimesIndex = 0
	frameTimesCount = 0
}

func FrameStarted() {
	frameStartTime = now()
}

// FrameEnded sets the delta time to the duration of the frame that just ended
func FrameEnded() {

	dt = float32(now().Sub(frameStartTime).Seconds())

	frameTimeSum -= frameTimes[frameTimesIndex]
	frameTimes[frameTimesIndex] = dt
	frameTimeSum += dt

	frameTimesIndex = (frameTimesIndex + 1) % avgFPSSampleCount
	if frameTimesCount < avgFPSSampleCount {
		frameTimesCount++
	}
}

// DT returns the duration of the last frame in seconds
func DT() float32 {
	return dt
}

// GetAvgFPS returns the frames per second averaged over the last 60 frames
func GetAvgFPS() float32 {

	if frameTimesCount == 0 || frameTimeSum <= 0 {
		return 0
	}

	return float32(frameTimesCount) / frameTimeSum
}

// ElapsedTime returns the seconds passed since Init
func ElapsedTime() float32 {
	return float32(now().Sub(startTime).Seconds())
}

// Interval is for doing something periodically from the frame loop, like logging the fps
type Interval struct {
	Seconds float32
	last    float32
}

// Passed returns true if at least Seconds have elapsed since the last time it returned true (or since Init)
func (i *Interval) Passed() bool {

	elapsed := ElapsedTime()
	if elapsed-i.last < i.Seconds {
		return false
	}

	i.last = elapsed
	return true
}
