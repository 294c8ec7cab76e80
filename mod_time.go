package glrender

import (
	"time"
)

type Time struct {
	Time  time.Time
	Dt    time.Duration
	Frame uint64

	windowStart  time.Time
	windowFrames uint64
	FPS          float64
}

// TimeModule keeps the Time resource current. When ReportEvery is set the
// measured frame rate is logged at debug level on that interval.
type TimeModule struct {
	ReportEvery time.Duration
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := time.Now()
	cmd.AddResources(&Time{
		Time:        now,
		Dt:          0,
		windowStart: now,
	})

	log := app.Logger()
	every := mod.ReportEvery
	app.UseSystem(
		System(func(t *Time) {
			timeSystem(t, time.Now())
			if every > 0 && t.Time.Sub(t.windowStart) >= every {
				log.Debugf("frame %d: %.1f fps", t.Frame, t.FPS)
				t.windowStart = t.Time
				t.windowFrames = 0
			}
		}).InStage(Prelude),
	)
}

func timeSystem(timeResource *Time, now time.Time) {
	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
	timeResource.Frame++
	timeResource.windowFrames++

	if elapsed := now.Sub(timeResource.windowStart); elapsed > 0 {
		timeResource.FPS = float64(timeResource.windowFrames) / elapsed.Seconds()
	}
}
