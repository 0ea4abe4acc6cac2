// Command lanczosdemo drives a synthetic Block Lanczos solve end to end:
// build a random sparse GF(16) matrix, run the recurrence to termination,
// and report the iteration count plus a residual check. A thin demo, not
// a Macaulay-file loader or general-purpose CLI — grounded on the
// teacher's examples/*.go style of a small main with no CLI framework.
package main

import (
	"flag"
	"log"

	"github.com/kcning/lanczos16/config"
	"github.com/kcning/lanczos16/gf16"
	"github.com/kcning/lanczos16/internal/xrand"
	"github.com/kcning/lanczos16/lanczos"
	"github.com/kcning/lanczos16/rmatrix"
	"github.com/kcning/lanczos16/sparse"
	"github.com/kcning/lanczos16/workerpool"
)

func main() {
	rnum := flag.Int("rows", 256, "row count of the synthetic sparse matrix")
	cnum := flag.Int("cols", 255, "column count of the synthetic sparse matrix")
	colWeight := flag.Int("col-weight", 4, "non-zero entries per column")
	matSeed := flag.Int64("mat-seed", 1, "seed for the synthetic matrix")
	profilePath := flag.String("profile", "", "optional YAML solve profile (config.Profile); overrides -width/-workers/-seed/-debug")
	width := flag.Int("width", int(config.W128), "block width (64, 128, 256, or 512)")
	workers := flag.Int("workers", 4, "worker pool size")
	seed := flag.Int64("seed", 2, "seed for Arg initialization")
	debug := flag.Bool("debug", false, "enable debug-only invariant assertions")
	flag.Parse()

	opts := resolveOptions(*profilePath, *width, *workers, *seed, *debug)

	m := randomCMSM(*rnum, *cnum, *colWeight, *matSeed)

	arg, err := lanczos.NewArgFromOptions(*rnum, *cnum, opts)
	if err != nil {
		log.Fatalf("lanczosdemo: NewArgFromOptions: %v", err)
	}
	arg.Init(opts.Rand)

	pool := workerpool.New(opts.Workers)
	defer pool.Close()

	iterations, err := lanczos.Run(arg, m, pool)
	if err != nil {
		log.Fatalf("lanczosdemo: Run: %v", err)
	}

	maxIter := lanczos.BlkIterNum(opts.Width, 16, uint32(*cnum))
	log.Printf("converged in %d iterations (advisory bound %d)", iterations, maxIter)

	residual := rmatrix.Zero(*cnum, int(opts.Width))
	sparse.MulT(&residual, m, arg.V())
	if matIsZero(residual, *cnum, int(opts.Width)) {
		log.Printf("residual check: Mᵀ·V is the zero matrix, as expected")
	} else {
		log.Printf("residual check: Mᵀ·V is NOT zero — unexpected for a converged solve")
	}
}

// resolveOptions builds the solve configuration via config.Resolve, the
// same entry point any lanczos16 caller uses. A YAML profile, when given,
// is authoritative (config.LoadProfile + Profile.ToOptions): the
// individual width/workers/seed/debug flags only apply when -profile is
// unset, since flag.Parse cannot distinguish "the user passed -width" from
// "the default happened to apply" and would otherwise silently stomp a
// profile's values.
func resolveOptions(profilePath string, width, workers int, seed int64, debug bool) config.Options {
	if profilePath != "" {
		profile, err := config.LoadProfile(profilePath)
		if err != nil {
			log.Fatalf("lanczosdemo: LoadProfile: %v", err)
		}
		return config.Resolve(profile.ToOptions()...)
	}

	return config.Resolve(
		config.WithWidth(config.Width(width)),
		config.WithWorkers(workers),
		config.WithSeed(seed),
		config.WithDebugAssertions(debug),
	)
}

func matIsZero(m rmatrix.RMatrix, rnum, width int) bool {
	for i := 0; i < rnum; i++ {
		for j := 0; j < width; j++ {
			if m.At(i, j) != 0 {
				return false
			}
		}
	}
	return true
}

// randomCMSM builds a synthetic rnum x cnum sparse matrix with exactly
// colWeight distinct non-zero rows per column, deterministic in seed.
func randomCMSM(rnum, cnum, colWeight int, seed int64) *sparse.CMSM {
	rng := xrand.New(seed)
	cols := make([][]sparse.Entry, cnum)
	for j := range cols {
		seen := make(map[int]bool, colWeight)
		for len(cols[j]) < colWeight {
			r := rng.Intn(rnum)
			if seen[r] {
				continue
			}
			seen[r] = true
			v := gf16.Elem(1 + rng.Intn(15))
			cols[j] = append(cols[j], sparse.Entry{Row: r, Val: v})
		}
	}
	m, err := sparse.BuildFromEntries(rnum, cnum, cols)
	if err != nil {
		log.Fatalf("lanczosdemo: BuildFromEntries: %v", err)
	}
	return m
}
