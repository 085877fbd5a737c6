// Package testutil provides testing utilities for blockarena.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded RNG for reproducible allocation workloads and helpers
// to stamp and verify byte patterns in arena memory.
//
// # Random Workloads
//
//	rng := testutil.NewRNG(seed)
//	sizes := rng.Sizes(100, 1, 512) // 100 sizes in [1, 512]
//	if rng.Chance(0.3) { ... }      // release instead of allocate
//
// # Content Checks
//
//	testutil.FillPattern(buf, id)
//	ok := testutil.HasPattern(buf, id)
package testutil
