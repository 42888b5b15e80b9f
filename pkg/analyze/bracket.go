package analyze

// Between reports whether v lies between lo and hi, regardless of which bound
// is larger. The lo side is inclusive and the hi side exclusive, so a crossing
// that lands exactly on v is counted once: on the sample that reaches it, not
// on the one that leaves it.
func Between(v, lo, hi float64) bool {
	return (v >= lo && v < hi) || (v > hi && v <= lo)
}
