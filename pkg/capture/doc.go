// Package capture rasterizes a live visual element into an immutable
// [Snapshot].
//
// An [Element] is anything that knows its on-screen size and can paint
// itself onto a gg drawing context: in crimereport that is the chart view.
// [Capturer.Capture] paints the element into an oversampled off-screen
// bitmap (scale 5 by default, for print fidelity), encodes it as JPEG and
// delivers exactly one [Result] on the returned channel:
//
//	res := <-capture.New(capture.WithScale(5)).Capture(view)
//	if res.Err != nil {
//	    // detached, zero-sized, paint failure or encode failure
//	}
//	snap := res.Snapshot
//
// A failed capture never yields partial output. Capturing never mutates the
// element; the element is assumed to be settled when Capture is called.
package capture
