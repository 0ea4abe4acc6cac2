// Package simdkit detects which word-processing strategy the host CPU
// favors and exposes it as a small enum that grpb consults to pick
// between its scalar and batched kernel variants.
//
// Grounded on hwy/dispatch_amd64.go and hwy/dispatch.go: a package-level
// currentLevel set once at init() from golang.org/x/sys/cpu feature
// flags, an HWY_NO_SIMD-style environment override for testing, and a
// DispatchLevel.String() for logging. lanczos16 has no hand-written
// assembly kernels — both "generic" and "batched" code paths are plain
// Go — so unlike go-highway this package never gates actual SIMD
// intrinsics, only which loop shape (one word vs. a pair of words per
// iteration) runs, on the theory that the pair-at-a-time shape pipelines
// better on CPUs with wide out-of-order execution windows.
package simdkit

import (
	"os"
	"strconv"

	"golang.org/x/sys/cpu"
)

// Level names the detected word-processing strategy.
type Level int

const (
	// LevelScalar processes one 64-bit word per loop iteration.
	LevelScalar Level = iota

	// LevelBatched processes two 64-bit words per loop iteration,
	// favored on CPUs with AVX2 or better (a proxy for "wide,
	// deeply-pipelined integer ALUs" since lanczos16 has no actual AVX2
	// code path to gate).
	LevelBatched
)

// String returns a human-readable name for lvl.
func (lvl Level) String() string {
	switch lvl {
	case LevelScalar:
		return "scalar"
	case LevelBatched:
		return "batched"
	default:
		return "unknown"
	}
}

var currentLevel Level

func init() {
	if noSIMDEnv() {
		currentLevel = LevelScalar
		return
	}
	currentLevel = detect()
}

func detect() Level {
	if cpu.X86.HasAVX2 || cpu.X86.HasAVX512F {
		return LevelBatched
	}
	return LevelScalar
}

// CurrentLevel returns the word-processing strategy selected for this
// process. Fixed at init time; never changes during a run.
func CurrentLevel() Level {
	return currentLevel
}

// PreferBatched reports whether callers should use the batched
// (pair-of-words) kernel variant rather than the one-word-at-a-time
// generic variant.
func PreferBatched() bool {
	return currentLevel == LevelBatched
}

// noSIMDEnv checks LANCZOS16_NO_SIMD, mirroring go-highway's HWY_NO_SIMD
// escape hatch for forcing the baseline code path during testing.
func noSIMDEnv() bool {
	val := os.Getenv("LANCZOS16_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
