// Package clock schedules callbacks against a display refresh.
//
// Frame is a refresh-driven callback queue in the spirit of a browser's
// animation-frame scheduler: Schedule registers a callback for the next
// refresh and returns a Handle that Cancel accepts. The display host calls
// Fire once per refresh. Callbacks registered while Fire is running wait for
// the following refresh, so a self-rescheduling callback runs exactly once
// per refresh.
//
// Ticker fires a Frame at a fixed rate for hosts that have no vertical sync
// of their own (headless and terminal displays).
//
//	frame := clock.NewFrame()
//	ticker := clock.NewTicker(frame, clock.DefaultRefreshRate)
//	go ticker.Run(ctx, present)
package clock
