package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/ooftn/ecs"
)

// maxMismatches bounds how many disagreements a report keeps.
const maxMismatches = 10

type Report struct {
	// Configuration
	Frames   int
	Duration time.Duration
	Seed     uint64
	Compare  bool
	Entities int

	// Results
	TotalUpdates  int64
	TotalTime     time.Duration
	ArchTime      Stats
	ExtTime       Stats
	Scheduler     *ecs.SchedulerStats
	Storage       *ecs.StorageStats
	FinalPlayer   mgl64.Vec2
	Mismatches    []Mismatch
	MismatchCount int
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

func (r *Report) addMismatch(m Mismatch) {
	r.MismatchCount++
	if len(r.Mismatches) < maxMismatches {
		r.Mismatches = append(r.Mismatches, m)
	}
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Camera Stress Report

## Run
- **Frames:** {{if .Duration}}as many as fit in {{.Duration}}{{else}}{{.Frames}}{{end}}
- **Seed:** {{.Seed}}
- **Scene Entities:** {{.Entities}}

## Timing
- **Total Updates:** {{.TotalUpdates}}
- **Total Time:** {{.TotalTime}}
- **archcam Step:** avg {{.ArchTime.Avg}} / min {{.ArchTime.Min}} / max {{.ArchTime.Max}}
- **extcam Step:** avg {{.ExtTime.Avg}} / min {{.ExtTime.Min}} / max {{.ExtTime.Max}}
{{with .Scheduler}}
## archcam Systems
{{range .Systems}}- {{printf "%-18s" .Name}} runs {{.ExecutionCount}}  avg {{.AvgDuration}}  max {{.MaxDuration}}  total {{.TotalDuration}}
{{end}}{{end}}{{with .Storage}}
## archcam Storage
- Archetypes: {{.ArchetypeCount}}
- Entities:   {{.TotalEntityCount}}
- Singletons: {{.SingletonCount}}
{{end}}
## Final Player
- {{vec .FinalPlayer}}
{{if .Compare}}
## Parity
{{if .MismatchCount}}- **{{.MismatchCount}} mismatching frames**
{{range .Mismatches}}  - frame {{.Frame}}: {{.What}}
{{end}}{{else}}- both worlds agreed on every frame
{{end}}{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:  {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc: {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:      {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- GC Pause:    {{usub64 .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs | ns}}
`

var reportFuncs = template.FuncMap{
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"usub64": func(a, b uint64) uint64 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
	"vec": func(v mgl64.Vec2) string {
		return fmt.Sprintf("(%g, %g)", v.X(), v.Y())
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
