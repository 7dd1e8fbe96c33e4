package protocol

// crcPoly is the reversed representation of the CRC-32 generator polynomial.
const crcPoly = 0xEDB88320

var crcTable = makeCRCTable()

func makeCRCTable() [256]uint32 {
	var table [256]uint32
	for i := range table {
		crc := uint32(i)
		for k := 0; k < 8; k++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ crcPoly
			} else {
				crc >>= 1
			}
		}
		table[i] = crc
	}
	return table
}

// Checksum computes the CRC-32 of data. Initial value 0xFFFFFFFF, final
// complement: bit-compatible with the widely deployed CRC-32, so the
// host-side logging system can verify the same value with its own
// implementation. Defined for any byte sequence, including empty.
func Checksum(data []byte) uint32 {
	crc := ^uint32(0)
	for _, b := range data {
		crc = crcTable[byte(crc)^b] ^ (crc >> 8)
	}
	return ^crc
}
