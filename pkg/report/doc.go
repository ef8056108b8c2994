// Package report composes branded PDF reports from a captured chart.
//
// Composition runs in four steps:
//
//  1. [DrawFurniture] stamps the static page template (headers, separator,
//     per-page footers and the decorative rule) onto a fresh [Document].
//  2. The chart element is rasterized through [capture.Capturer]. This is the
//     only step that waits.
//  3. [Place] computes an aspect-preserving rectangle inside the content band.
//  4. The snapshot is embedded, the document is serialized into memory and
//     only then handed to a [Target] as report.pdf.
//
// [Composer] drives these steps as a small state machine:
//
//	Idle → FurnitureDrawn → Capturing → Composing → Exported
//	                            ↘            ↘
//	                             Failed       Failed
//
// A failed attempt never reaches the target, so no partial file is written.
// Presentation side effects (hiding the chart, resetting a form) belong to the
// caller, which reacts to the returned [Outcome].
//
// [capture.Capturer]: github.com/realassist/crimereport/pkg/capture.Capturer
package report
