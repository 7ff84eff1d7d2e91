package field

// Data conversion between bytes and field elements

// SplitBitsToElements splits data into elements of exactly width bits, most
// significant bit first. Trailing bits that do not fill an element are
// discarded.
func SplitBitsToElements(data []byte, width int) []Element {
	if width <= 0 || width > 64 {
		return nil
	}
	numElements := len(data) * 8 / width

	result := make([]Element, numElements)
	for i := range result {
		var v uint64
		startBit := i * width
		for bit := 0; bit < width; bit++ {
			src := startBit + bit
			v <<= 1
			if data[src/8]&(1<<(7-src%8)) != 0 {
				v |= 1
			}
		}
		result[i] = Element(v)
	}
	return result
}

// ElementsToBytes packs elements of width bits back into bytes, most
// significant bit first. The output is rounded up to whole bytes.
func ElementsToBytes(elements []Element, width int) []byte {
	if width <= 0 || width > 64 {
		return nil
	}
	totalBits := len(elements) * width
	result := make([]byte, (totalBits+7)/8)

	for i, element := range elements {
		startBit := i * width
		for bit := 0; bit < width; bit++ {
			if uint64(element)>>(width-1-bit)&1 == 0 {
				continue
			}
			dst := startBit + bit
			result[dst/8] |= 1 << (7 - dst%8)
		}
	}
	return result
}

// BitWidth returns the number of bits needed to hold any element of f.
func (f *Field) BitWidth() int {
	w := 0
	for v := f.q - 1; v > 0; v >>= 1 {
		w++
	}
	return w
}
