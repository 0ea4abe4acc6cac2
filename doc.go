// Package lanczos16 is a parallel Block Lanczos solver over GF(16): given
// a sparse N x L matrix M, it finds a dense N x B matrix V such that
// Mᵀ·V is the zero matrix — a non-trivial left null-space basis, the
// core linear-algebra step of sieve-based integer factorization and
// discrete-log algorithms.
//
// Under the hood, the solve is organized into small, single-responsibility
// packages:
//
//	gf16/       — GF(16) scalar arithmetic
//	bitvec/     — bitset primitives (DiagMask, row-presence masks)
//	grpb/       — bitsliced groups-of-B GF(16) vectors
//	rcmatrix/   — dense width x width matrices (Gauss-Jordan, mixing)
//	rmatrix/    — dense N x width matrices (Gramian, fma family)
//	sparse/     — column-major sparse GF(16) matrices (CMSM)
//	mdmac/      — external sparse-matrix-source interface (no implementation)
//	workerpool/ — persistent worker pool
//	lanczos/    — the Block Lanczos driver and its workspace
//
// cmd/lanczosdemo drives a synthetic solve end to end from the command
// line.
package lanczos16
