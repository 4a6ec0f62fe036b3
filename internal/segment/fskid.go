package segment

// FSKID framing constants. Each payload byte contributes its low 6 bits,
// LSB-first, at 22 ms per bit.
const (
	fskidBitsPerByte = 6

	fskidLeader1    = 0x20
	fskidLeader2    = 0x2A
	fskidTerminator = 0x01
	fskidCharBase   = 0x20
)

// AppendPayload appends the framed FSKID payload for text to dst and
// returns the result: the two-byte leader, one byte per ASCII character
// offset down by 0x20, and the terminator. Repeated calls append whole
// frames, each with its own leader.
func AppendPayload(dst []byte, text string) []byte {
	dst = append(dst, fskidLeader1, fskidLeader2)
	for i := 0; i < len(text); i++ {
		dst = append(dst, text[i]-fskidCharBase)
	}
	return append(dst, fskidTerminator)
}
