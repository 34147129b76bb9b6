package brainfuck

// Packed storage for program text. Eight instruction symbols fit a nibble
// with room for a terminator, so persisted programs take half the bytes of
// their canonical text. Comment characters don't survive packing; the
// unpacked form is the canonical instruction stream.

const packEnd byte = 0

func packSymbol(b byte) (byte, bool) {
	switch OP(b) {
	case OP_POINTER_LEFT:
		return 1, true
	case OP_POINTER_RIGHT:
		return 2, true
	case OP_INC:
		return 3, true
	case OP_DEC:
		return 4, true
	case OP_WHILE:
		return 5, true
	case OP_WHILE_END:
		return 6, true
	case OP_OUTPUT:
		return 7, true
	case OP_INPUT:
		return 8, true
	}
	return packEnd, false
}

func unpackSymbol(nibble byte) (byte, bool) {
	switch nibble {
	case 1:
		return byte(OP_POINTER_LEFT), true
	case 2:
		return byte(OP_POINTER_RIGHT), true
	case 3:
		return byte(OP_INC), true
	case 4:
		return byte(OP_DEC), true
	case 5:
		return byte(OP_WHILE), true
	case 6:
		return byte(OP_WHILE_END), true
	case 7:
		return byte(OP_OUTPUT), true
	case 8:
		return byte(OP_INPUT), true
	}
	return 0, false
}

// PackOps compresses source text to two symbols per byte, high nibble
// first. Non-instruction characters are dropped. A zero nibble terminates
// an odd-length stream.
func PackOps(source string) []byte {
	packed := make([]byte, 0, len(source)/2+1)
	var current byte
	high := true
	for i := 0; i < len(source); i++ {
		symbol, ok := packSymbol(source[i])
		if !ok {
			continue
		}
		if high {
			current = symbol << 4
			high = false
		} else {
			packed = append(packed, current|symbol)
			high = true
		}
	}
	if !high {
		packed = append(packed, current)
	}
	return packed
}

// UnpackOps restores the canonical instruction stream from packed bytes.
func UnpackOps(packed []byte) string {
	ops := make([]byte, 0, len(packed)*2)
	for _, b := range packed {
		for _, nibble := range [2]byte{b >> 4, b & 15} {
			symbol, ok := unpackSymbol(nibble)
			if !ok {
				return string(ops)
			}
			ops = append(ops, symbol)
		}
	}
	return string(ops)
}
