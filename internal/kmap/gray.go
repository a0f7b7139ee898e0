package kmap

// Gray-code conversions for human-facing cell ordering. Adjacency never goes
// through these; it is computed directly from Hamming distance.

// LinearToGray converts a linear cell index to its Gray code. Out-of-range
// input maps to 0.
func LinearToGray(linear, numVars int) int {
	if linear < 0 || linear >= (1<<numVars) {
		return 0
	}
	return linear ^ (linear >> 1)
}

// GrayToLinear inverts LinearToGray. Out-of-range input maps to 0.
func GrayToLinear(gray, numVars int) int {
	if gray < 0 || gray >= (1<<numVars) {
		return 0
	}
	linear := gray
	for i := 1; i < numVars; i++ {
		linear ^= gray >> i
	}
	return linear
}
