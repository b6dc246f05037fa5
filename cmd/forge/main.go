// forge converts a silhouette JSON document into a brick list, offline.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"brickforge.ai/internal/model"
	"brickforge.ai/internal/pipeline"
)

func main() {
	var (
		inPath  = flag.String("in", "", "silhouette model JSON (single/multi/tri view)")
		outPath = flag.String("out", "", "brick list output path (default: stdout)")
		voxPath = flag.String("voxels", "", "also write the voxel list here (optional)")
		mirrorX = flag.Bool("mirror_x", false, "enforce left-right symmetry (single view)")
		mirrorZ = flag.Bool("mirror_z", false, "enforce front-back symmetry (single view)")
		quiet   = flag.Bool("q", false, "suppress diagnostics")
	)
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "missing -in")
		os.Exit(2)
	}

	raw, err := os.ReadFile(*inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read input:", err)
		os.Exit(1)
	}

	p, err := model.Parse(raw)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(os.Stderr, "invalid model (%s):\n", verr.Kind)
			for _, f := range verr.Fields {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", f.Field, f.Reason)
			}
		} else {
			fmt.Fprintln(os.Stderr, "parse:", err)
		}
		os.Exit(1)
	}

	var tr *pipeline.Trace
	if !*quiet {
		tr = &pipeline.Trace{
			Voxels: func(stage string, n int) {
				fmt.Fprintf(os.Stderr, "%s: %d\n", stage, n)
			},
			Fallback: func(kind string) {
				fmt.Fprintf(os.Stderr, "%s: top view too sparse, using two-view carve\n", kind)
			},
			Floating: func(removed int) {
				if removed > 0 {
					fmt.Fprintf(os.Stderr, "removed %d floating bricks\n", removed)
				}
			},
		}
	}

	res := pipeline.Generate(p, pipeline.Options{MirrorX: *mirrorX, MirrorZ: *mirrorZ}, tr)

	if err := writeJSON(*outPath, res.Bricks); err != nil {
		fmt.Fprintln(os.Stderr, "write bricks:", err)
		os.Exit(1)
	}
	if *voxPath != "" {
		if err := writeJSON(*voxPath, res.Voxels); err != nil {
			fmt.Fprintln(os.Stderr, "write voxels:", err)
			os.Exit(1)
		}
	}
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if path == "" {
		_, err = os.Stdout.Write(b)
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
