package mkidphoton

import (
	"context"
	"runtime"

	"github.com/alitto/pond"
)

// BatchRequest names one independent ExtractPhotons call. Requests share
// no mutable state with one another (spec §5), so BatchExtract can run them
// concurrently over a bounded worker pool.
type BatchRequest struct {
	Dir             string
	StartTimestamp  int64
	IntegrationTime int
	BeamMap         []int64
	Ncol, Nrow      int
	Out             []Photon
	ConfigURI       string
	Verbose         bool
}

// BatchResult is one BatchRequest's outcome, indexed the same as the
// request slice passed to BatchExtract.
type BatchResult struct {
	Count int64
	Diag  Diagnostics
	Err   error
}

// BatchExtract runs each request's ExtractPhotons call over a fixed pool
// of 2*NumCPU workers, grounded on cmd/main.go's convert_gsf_list. Each
// request's Out buffer is owned exclusively by that request, satisfying
// spec §5's "no shared mutable state" precondition for concurrent calls.
// ctx cancellation stops submitting new work but does not interrupt a
// request already in flight (ExtractPhotons has no suspension point,
// per spec §5).
func BatchExtract(ctx context.Context, requests []BatchRequest) []BatchResult {
	results := make([]BatchResult, len(requests))

	n := runtime.NumCPU() * 2
	pool := pond.New(n, 0, pond.MinWorkers(n), pond.Context(ctx))
	defer pool.StopAndWait()

	for i, req := range requests {
		i, req := i, req
		pool.Submit(func() {
			count, diag, err := ExtractPhotons(
				req.Dir, req.StartTimestamp, req.IntegrationTime,
				req.BeamMap, req.Ncol, req.Nrow, req.Out, req.ConfigURI, req.Verbose,
			)
			results[i] = BatchResult{Count: count, Diag: diag, Err: err}
		})
	}

	return results
}
