// Package chart renders yearly statistics as a line chart.
//
// A [View] is the on-screen chart container: a heading above a single line
// chart. It satisfies [capture.Element], so the report composer can rasterize
// it without knowing anything about its contents.
//
//	data := chart.FromRecords(records, crimestats.OffenseBurglary)
//	view := chart.NewView(data)
//	snap, err := capture.Await(capture.New().Capture(view))
//
// Styling mirrors the web dashboard the reports were first produced from:
// no legend, no vertical grid lines, bold tick labels, a y axis anchored at
// zero and a small padding around the plot.
//
// [capture.Element]: github.com/realassist/crimereport/pkg/capture.Element
package chart
