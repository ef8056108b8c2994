// Package pkg provides the core libraries for crimereport.
//
// # Overview
//
// crimereport fetches yearly crime statistics for a region, draws them as a
// line chart, captures the chart as a raster and composes a branded PDF
// report. The pkg directory is organized into these areas:
//
//  1. [report] - Page furniture, content placement, document and composer
//  2. [capture] - Rasterizing a visual element into a JPEG snapshot
//  3. [chart] - The chart view that gets captured
//  4. [integrations] - HTTP collaborators (crime statistics backend)
//  5. [pipeline] - Orchestration (fetch → chart → compose)
//
// # Architecture
//
//	Statistics backend
//	         ↓
//	    [integrations/crimestats] (fetch + cache)
//	         ↓
//	    [chart] (build the view)
//	         ↓
//	    [capture] (raster snapshot)
//	         ↓
//	    [report] (furniture, placement, export)
//	         ↓
//	    report.pdf
//
// # Quick Start
//
//	client := crimestats.NewClient(cache.NewNullCache(), "", time.Hour)
//	runner := pipeline.NewRunner(client, nil)
//	res, err := runner.Execute(ctx, pipeline.Options{Region: "AK"}, report.DirTarget{Dir: "."})
//
// # Supporting Packages
//
// [cache] - Cache interface with file, Redis and null implementations.
//
// [httputil] - Retry with exponential backoff for transient failures.
//
// [observability] - Hook registry for pipeline, HTTP and cache events, with a
// Prometheus implementation.
//
// [errors] - Structured error codes shared by the CLI and HTTP server.
//
// [fonts] - Embedded Go fonts used by the chart painter.
//
// # Testing
//
//	go test ./pkg/...
//	go test -run Example ./pkg/...
//
// [report]: https://pkg.go.dev/github.com/realassist/crimereport/pkg/report
// [capture]: https://pkg.go.dev/github.com/realassist/crimereport/pkg/capture
// [chart]: https://pkg.go.dev/github.com/realassist/crimereport/pkg/chart
// [integrations]: https://pkg.go.dev/github.com/realassist/crimereport/pkg/integrations
// [integrations/crimestats]: https://pkg.go.dev/github.com/realassist/crimereport/pkg/integrations/crimestats
// [pipeline]: https://pkg.go.dev/github.com/realassist/crimereport/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/realassist/crimereport/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/realassist/crimereport/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/realassist/crimereport/pkg/observability
// [errors]: https://pkg.go.dev/github.com/realassist/crimereport/pkg/errors
// [fonts]: https://pkg.go.dev/github.com/realassist/crimereport/pkg/fonts
package pkg
