package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/insurekit/policyclean/dataio"
	"github.com/insurekit/policyclean/pkg/policy"
	j "github.com/insurekit/policyclean/pkg/policyclean"
)

// genSource emits generated dirty-policy chunks. Chunk i always derives its
// seed from base+i, so reopening the source replays the same records, which
// the two-pass mean computation depends on.
type genSource struct {
	remain int
	chunk  int
	seed   int64
	next   int64
}

func (g *genSource) Next() (*j.Frame, error) {
	if g.remain <= 0 {
		return nil, io.EOF
	}
	n := g.chunk
	if n > g.remain {
		n = g.remain
	}
	g.remain -= n
	f := dataio.DirtyPolicies(n, g.seed+g.next)
	g.next++
	return f, nil
}

type blackholeSink struct{ rows int }

func (b *blackholeSink) Write(f *j.Frame) error { b.rows += f.Rows(); return nil }
func (b *blackholeSink) Close() error           { return nil }

func main() {
	var (
		rows    = flag.Int("rows", 1_000_000, "total rows to generate")
		chunk   = flag.Int("chunk", 100_000, "rows per chunk")
		seed    = flag.Int64("seed", 42, "random seed")
		jsonOut = flag.Bool("json", false, "emit JSON summary")
	)
	flag.Parse()

	open := func() (j.ChunkSource, error) {
		return &genSource{remain: *rows, chunk: *chunk, seed: *seed}, nil
	}
	sink := &blackholeSink{}

	// Warm up
	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	var msBefore, msAfter runtime.MemStats
	runtime.ReadMemStats(&msBefore)
	start := time.Now()
	rep, err := policy.NormalizeStream(context.Background(), policy.DefaultConfig(), open, sink)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	elapsed := time.Since(start)
	runtime.ReadMemStats(&msAfter)

	rowsPerSec := float64(*rows) / elapsed.Seconds()
	summary := map[string]any{
		"rows":                  *rows,
		"rows_out":              sink.rows,
		"elapsed_ms":            elapsed.Milliseconds(),
		"rows_per_sec":          rowsPerSec,
		"mem_alloc_bytes":       msAfter.Alloc,
		"mem_total_alloc_bytes": msAfter.TotalAlloc - msBefore.TotalAlloc,
		"gc_num":                msAfter.NumGC - msBefore.NumGC,
		"chunk":                 *chunk,
		"anomalies":             rep.Total(),
		"rows_dropped":          rep.RowsDropped,
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	fmt.Printf("rows in/out:   %d / %d\n", *rows, sink.rows)
	fmt.Printf("elapsed:       %s\n", elapsed)
	fmt.Printf("throughput:    %.0f rows/sec\n", rowsPerSec)
	fmt.Printf("alloc delta:   %.1f MiB\n", float64(msAfter.TotalAlloc-msBefore.TotalAlloc)/(1<<20))
	fmt.Printf("gc cycles:     %d\n", msAfter.NumGC-msBefore.NumGC)
	fmt.Print(rep)
}
