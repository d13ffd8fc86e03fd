// SPDX-License-Identifier: MIT

package matrix

// Test-only handles on unexported kernels (compiled into the test binary only).
var (
	CholeskyFactor_TestOnly = choleskyFactor
	Tiles_TestOnly          = tiles
)
