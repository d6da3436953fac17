// Package security holds the pure clearance-key validation routine used
// by the prison exit protocol. It has no dependency on the rest of the
// simulation and no side effects.
package security

// ValidKey reports whether a clearance key passes the exit checksum.
//
// The key may contain hyphen separators; everything else must be
// alphanumeric. After stripping hyphens and uppercasing, the cleaned
// key must be exactly 16 characters and satisfy all of:
//
//  1. the byte sum of characters 0-3 (mod 256) equals the bitwise XOR
//     of characters 4-7,
//  2. the sum of characters 4-7 is congruent to 3 mod 7,
//  3. exactly one of characters 12-15 is a decimal digit.
func ValidKey(key string) bool {
	clean := make([]byte, 0, 16)
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c == '-' {
			continue
		}
		if !isAlnum(c) {
			return false
		}
		if len(clean) >= 16 {
			return false
		}
		clean = append(clean, upper(c))
	}
	if len(clean) != 16 {
		return false
	}

	asciiSum := 0
	xorSum := 0
	for i := 0; i < 4; i++ {
		asciiSum += int(clean[i])
	}
	for i := 4; i < 8; i++ {
		xorSum ^= int(clean[i])
	}
	if asciiSum%256 != xorSum {
		return false
	}

	modSum := 0
	for i := 4; i < 8; i++ {
		modSum += int(clean[i])
	}
	if modSum%7 != 3 {
		return false
	}

	digits := 0
	for i := 12; i < 16; i++ {
		if clean[i] >= '0' && clean[i] <= '9' {
			digits++
		}
	}
	return digits == 1
}

func isAlnum(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	}
	return false
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
