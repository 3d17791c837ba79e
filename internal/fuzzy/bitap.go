package fuzzy

// patternChunkSize is the widest pattern a single bitap pass can handle;
// longer patterns are split into chunks by MatchPattern.
const patternChunkSize = 32

// computeScore turns an error count into a normalized score in [0, 1].
// 0 is a perfect match. With IgnoreLocation set the position of the
// match carries no penalty, which keeps long content fields searchable.
func computeScore(errs, patternLen, currentLocation, expectedLocation int, cfg Config) float64 {
	accuracy := float64(errs) / float64(patternLen)
	if cfg.IgnoreLocation {
		return accuracy
	}

	proximity := currentLocation - expectedLocation
	if proximity < 0 {
		proximity = -proximity
	}
	if cfg.Distance == 0 {
		if proximity != 0 {
			return 1.0
		}
		return accuracy
	}
	return accuracy + float64(proximity)/float64(cfg.Distance)
}

// patternAlphabet maps each pattern rune to a bitmask of the positions
// where it occurs, most significant bit first.
func patternAlphabet(pattern []rune) map[rune]uint64 {
	alphabet := make(map[rune]uint64, len(pattern))
	n := len(pattern)
	for i, r := range pattern {
		alphabet[r] |= 1 << uint(n-i-1)
	}
	return alphabet
}

// indexOfRunes returns the first occurrence of needle in haystack at or
// after start, or -1.
func indexOfRunes(haystack, needle []rune, start int) int {
	if start < 0 {
		start = 0
	}
	for i := start; i+len(needle) <= len(haystack); i++ {
		found := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				found = false
				break
			}
		}
		if found {
			return i
		}
	}
	return -1
}

// bitapSearch runs a single bitap pass of pattern (at most
// patternChunkSize runes) over text. It reports whether a match within
// the threshold exists, the best score found, and a mask of text
// positions whose runes participated in matching, used for span
// extraction.
func bitapSearch(text, pattern []rune, cfg Config) (bool, float64, []bool) {
	patternLen := len(pattern)
	textLen := len(text)
	matchMask := make([]bool, textLen)

	if patternLen == 0 || textLen == 0 {
		return false, 1, matchMask
	}

	expectedLocation := cfg.Location
	if expectedLocation > textLen {
		expectedLocation = textLen
	}
	if expectedLocation < 0 {
		expectedLocation = 0
	}

	currentThreshold := cfg.Threshold

	// Exact substring shortcut: tightens the acceptance threshold so a
	// fuzzy candidate never outranks a literal occurrence.
	if loc := indexOfRunes(text, pattern, expectedLocation); loc > -1 {
		score := computeScore(0, patternLen, loc, expectedLocation, cfg)
		if score < currentThreshold {
			currentThreshold = score
		}
	}

	alphabet := patternAlphabet(pattern)
	finalMask := uint64(1) << uint(patternLen-1)

	bestLocation := -1
	finalScore := 1.0
	binMax := patternLen + textLen
	var lastBitArr []uint64

	for i := 0; i < patternLen; i++ {
		// Binary search for the widest location span still inside the
		// threshold at this error level.
		binMin := 0
		binMid := binMax
		for binMin < binMid {
			if computeScore(i, patternLen, expectedLocation+binMid, expectedLocation, cfg) <= currentThreshold {
				binMin = binMid
			} else {
				binMax = binMid
			}
			binMid = (binMax-binMin)/2 + binMin
		}
		binMax = binMid

		start := expectedLocation - binMid + 1
		if start < 1 {
			start = 1
		}
		finish := expectedLocation + binMid
		if finish > textLen {
			finish = textLen
		}
		finish += patternLen

		bitArr := make([]uint64, finish+2)
		bitArr[finish+1] = (1 << uint(i)) - 1

		for j := finish; j >= start; j-- {
			currentLocation := j - 1
			var charMatch uint64
			if currentLocation < textLen {
				charMatch = alphabet[text[currentLocation]]
				if charMatch != 0 {
					matchMask[currentLocation] = true
				}
			}

			// Exact matches at this error level.
			bitArr[j] = ((bitArr[j+1] << 1) | 1) & charMatch
			if i > 0 {
				// Substitutions, insertions, deletions.
				bitArr[j] |= ((lastBitArr[j+1]|lastBitArr[j])<<1 | 1) | lastBitArr[j+1]
			}

			if bitArr[j]&finalMask != 0 {
				score := computeScore(i, patternLen, currentLocation, expectedLocation, cfg)
				if score <= currentThreshold {
					currentThreshold = score
					finalScore = score
					bestLocation = currentLocation

					if bestLocation <= expectedLocation {
						break
					}
					// Narrow the scan window around the best hit.
					if s := 2*expectedLocation - bestLocation; s > start {
						start = s
					}
				}
			}
		}

		// No point trying more errors if even a perfectly placed match
		// at the next level would miss the threshold.
		if computeScore(i+1, patternLen, expectedLocation, expectedLocation, cfg) > currentThreshold {
			break
		}
		lastBitArr = bitArr
	}

	if bestLocation < 0 {
		return false, 1, matchMask
	}
	if finalScore < 0.001 {
		finalScore = 0.001
	}
	return true, finalScore, matchMask
}

// maskToSpans converts a per-rune match mask into inclusive [start, end]
// spans, discarding runs shorter than minLength.
func maskToSpans(mask []bool, minLength int) [][2]int {
	if minLength < 1 {
		minLength = 1
	}
	var spans [][2]int
	start := -1
	for i, matched := range mask {
		switch {
		case matched && start == -1:
			start = i
		case !matched && start != -1:
			if i-start >= minLength {
				spans = append(spans, [2]int{start, i - 1})
			}
			start = -1
		}
	}
	if start != -1 && len(mask)-start >= minLength {
		spans = append(spans, [2]int{start, len(mask) - 1})
	}
	return spans
}
