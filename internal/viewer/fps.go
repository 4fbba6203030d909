package viewer

import "time"

// fpsCounter counts frames over one-second windows.
type fpsCounter struct {
	frames int
	since  time.Time
}

// tick records a frame at now. When a second or more has passed since the
// window opened it returns the frame rate and starts a new window.
func (f *fpsCounter) tick(now time.Time) (float64, bool) {
	if f.since.IsZero() {
		f.since = now
	}
	f.frames++

	elapsed := now.Sub(f.since)
	if elapsed < time.Second {
		return 0, false
	}
	fps := float64(f.frames) / elapsed.Seconds()
	f.frames = 0
	f.since = now
	return fps, true
}
