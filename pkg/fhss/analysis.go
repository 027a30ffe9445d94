package fhss

// PrefixMatch compares two sequences position by position over the shorter
// length and returns how many positions agree
func PrefixMatch(a, b Sequence) (matched, compared int) {
	compared = len(a)
	if len(b) < compared {
		compared = len(b)
	}
	for i := 0; i < compared; i++ {
		if a[i] == b[i] {
			matched++
		}
	}
	return matched, compared
}

// Locate returns every offset in seq at which the observed channel run
// starts. The firmware wraps its hop pointer, so runs may cross the end of
// the sequence. Returns nil if observed is empty or longer than seq.
func Locate(seq Sequence, observed []uint8) []int {
	n := len(seq)
	if len(observed) == 0 || len(observed) > n {
		return nil
	}

	var offsets []int
	for start := 0; start < n; start++ {
		match := true
		for k, ch := range observed {
			if seq[(start+k)%n] != ch {
				match = false
				break
			}
		}
		if match {
			offsets = append(offsets, start)
		}
	}
	return offsets
}
