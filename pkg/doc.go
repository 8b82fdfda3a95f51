// Package pkg provides the core libraries for seatplan, the exam seating
// and invigilation document engine.
//
// # Overview
//
// Seatplan turns an exam record and a room setup into printable documents:
// a seat plan showing where every numbered student sits, and a duty roster
// naming the invigilator of each room. The pkg directory is organized into
// three areas:
//
//  1. Domain logic: [exam], [seating], [roster], [paginate], [compose]
//  2. Output: [render/sink] (PDF, SVG, JSON and terminal text)
//  3. Orchestration and infrastructure: [pipeline], [cache],
//     [observability], [errors], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	exam.toml / exam.json
//	         ↓
//	    [exam] package (decode + validate)
//	         ↓
//	    [seating] + [roster] packages (allocate seats, build grids, assign invigilators)
//	         ↓
//	    [compose] package (header lines + sections)
//	         ↓
//	    [paginate] package (layout pass + footer pass)
//	         ↓
//	    [render/sink] package → PDF/SVG/JSON/text
//
// # Quick Start
//
//	f, _ := exam.LoadFile("exam.toml")
//	res, _ := compose.New(paginate.Options{}).Compose(compose.KindSeatPlan, f)
//	if res.Ready {
//	    pdf, _ := sink.RenderPDF(res.Document)
//	    _ = os.WriteFile(res.Filename+".pdf", pdf, 0644)
//	}
//
// Most callers use [pipeline.Runner] instead, which adds option defaults,
// artifact caching and logging.
//
// [exam]: github.com/matzehuels/seatplan/pkg/exam
// [seating]: github.com/matzehuels/seatplan/pkg/seating
// [roster]: github.com/matzehuels/seatplan/pkg/roster
// [paginate]: github.com/matzehuels/seatplan/pkg/paginate
// [compose]: github.com/matzehuels/seatplan/pkg/compose
// [render/sink]: github.com/matzehuels/seatplan/pkg/render/sink
// [pipeline]: github.com/matzehuels/seatplan/pkg/pipeline
// [pipeline.Runner]: github.com/matzehuels/seatplan/pkg/pipeline#Runner
// [cache]: github.com/matzehuels/seatplan/pkg/cache
// [observability]: github.com/matzehuels/seatplan/pkg/observability
// [errors]: github.com/matzehuels/seatplan/pkg/errors
// [buildinfo]: github.com/matzehuels/seatplan/pkg/buildinfo
package pkg
