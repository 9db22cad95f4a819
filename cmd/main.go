package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/photondet/mkidphoton"
)

// parseBeamMap reads a beam map from a simple text format: one "resID
// flag x y" quadruple per line, matching the flat-quadruple layout of
// spec §6.2 without requiring a binary loader (the on-disk beam-map
// format is explicitly out of the core's scope; this is CLI-only glue).
func parseBeamMap(path string) ([]int64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var flat []int64
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("beam map line %q: expected 4 fields, got %d", line, len(fields))
		}

		for _, f := range fields {
			v, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return nil, err
			}
			flat = append(flat, v)
		}
	}

	return flat, nil
}

// extract handles a single extraction and writes the decoded photons and
// diagnostics to stdout as JSON.
func extract(cCtx *cli.Context) error {
	beamMap, err := parseBeamMap(cCtx.String("beam-map"))
	if err != nil {
		return err
	}

	ncol := cCtx.Int("ncol")
	nrow := cCtx.Int("nrow")
	out := make([]mkidphoton.Photon, cCtx.Int("max-photons"))

	count, diag, err := mkidphoton.ExtractPhotons(
		cCtx.String("dir"),
		cCtx.Int64("start"),
		cCtx.Int("integration-time"),
		beamMap, ncol, nrow, out,
		cCtx.String("config-uri"),
		cCtx.Bool("verbose"),
	)
	if err != nil && err != mkidphoton.ErrTruncated {
		return err
	}

	if count < int64(len(out)) {
		out = out[:count]
	}

	result := struct {
		Count       int64                  `json:"count"`
		Truncated   bool                   `json:"truncated"`
		Diagnostics mkidphoton.Diagnostics `json:"diagnostics"`
		Photons     []mkidphoton.Photon    `json:"photons"`
	}{
		Count:       count,
		Truncated:   err == mkidphoton.ErrTruncated,
		Diagnostics: diag,
		Photons:     out,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "    ")
	return enc.Encode(result)
}

// extractBatch fans a list of window requests, one per line of a request
// file ("dir start integration-time"), out over BatchExtract.
func extractBatch(cCtx *cli.Context) error {
	beamMap, err := parseBeamMap(cCtx.String("beam-map"))
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(cCtx.String("requests"))
	if err != nil {
		return err
	}

	ncol := cCtx.Int("ncol")
	nrow := cCtx.Int("nrow")
	maxPhotons := cCtx.Int("max-photons")

	var requests []mkidphoton.BatchRequest
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return fmt.Errorf("request line %q: expected 3 fields, got %d", line, len(fields))
		}

		start, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return err
		}
		integrationTime, err := strconv.Atoi(fields[2])
		if err != nil {
			return err
		}

		requests = append(requests, mkidphoton.BatchRequest{
			Dir:             fields[0],
			StartTimestamp:  start,
			IntegrationTime: integrationTime,
			BeamMap:         beamMap,
			Ncol:            ncol,
			Nrow:            nrow,
			Out:             make([]mkidphoton.Photon, maxPhotons),
			ConfigURI:       cCtx.String("config-uri"),
			Verbose:         cCtx.Bool("verbose"),
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := mkidphoton.BatchExtract(ctx, requests)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "    ")
	return enc.Encode(results)
}

func main() {
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name: "extract",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Usage: "directory containing {second}.bin files", Required: true},
					&cli.Int64Flag{Name: "start", Usage: "observation start, unix seconds UTC", Required: true},
					&cli.IntFlag{Name: "integration-time", Usage: "integration time in seconds", Required: true},
					&cli.StringFlag{Name: "beam-map", Usage: "path to a resID/flag/x/y quadruple text file", Required: true},
					&cli.IntFlag{Name: "ncol", Required: true},
					&cli.IntFlag{Name: "nrow", Required: true},
					&cli.IntFlag{Name: "max-photons", Usage: "capacity of the output photon buffer", Required: true},
					&cli.StringFlag{Name: "config-uri", Usage: "optional TileDB config URI for object-store access"},
					&cli.BoolFlag{Name: "verbose"},
				},
				Action: extract,
			},
			{
				Name: "extract-batch",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "requests", Usage: "path to a dir/start/integration-time text file", Required: true},
					&cli.StringFlag{Name: "beam-map", Required: true},
					&cli.IntFlag{Name: "ncol", Required: true},
					&cli.IntFlag{Name: "nrow", Required: true},
					&cli.IntFlag{Name: "max-photons", Required: true},
					&cli.StringFlag{Name: "config-uri"},
					&cli.BoolFlag{Name: "verbose"},
				},
				Action: extractBatch,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
