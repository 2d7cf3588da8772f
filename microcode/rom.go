package microcode

import (
	"fmt"
	"io"
)

// Image returns the microcode ROM as little-endian 16-bit words. The
// control word for (opcode, step) sits at byte offset
// ((opcode << 3) | step) * 2. Unpopulated addresses read as zero.
func (t *Table) Image() (image []byte) {
	image = make([]byte, ROM_WORDS*2)

	for addr, word := range t.Words() {
		image[addr*2] = byte(word)
		image[addr*2+1] = byte(word >> 8)
	}

	return
}

// WriteIntelHex writes the ROM image in Intel HEX format, 16 bytes per
// data record.
func (t *Table) WriteIntelHex(w io.Writer) (err error) {
	image := t.Image()

	for addr := 0; addr < len(image); addr += 16 {
		chunk := image[addr : addr+16]

		checksum := len(chunk) + (addr >> 8) + (addr & 0xff)
		for _, b := range chunk {
			checksum += int(b)
		}
		checksum = (-checksum) & 0xff

		_, err = fmt.Fprintf(w, ":%02X%04X00", len(chunk), addr)
		if err != nil {
			return
		}
		for _, b := range chunk {
			_, err = fmt.Fprintf(w, "%02X", b)
			if err != nil {
				return
			}
		}
		_, err = fmt.Fprintf(w, "%02X\n", checksum)
		if err != nil {
			return
		}
	}

	// End-of-file record.
	_, err = fmt.Fprintln(w, ":00000001FF")
	return
}

// WriteListing writes a symbolic, human-readable form of the table.
func (t *Table) WriteListing(w io.Writer) (err error) {
	_, err = fmt.Fprintf(w, "MICROCODE LISTING\n\nControl Signals:\n")
	if err != nil {
		return
	}
	for _, entry := range signalNames {
		_, err = fmt.Fprintf(w, "  %-12s = 0x%04X\n", entry.Name, uint16(entry.Signal))
		if err != nil {
			return
		}
	}

	_, err = fmt.Fprintf(w, "\nFetch (all opcodes):\n")
	if err != nil {
		return
	}
	for step, word := range FetchSteps {
		_, err = fmt.Fprintf(w, "  T%d: 0x%04X  %v\n", step, uint16(word), word)
		if err != nil {
			return
		}
	}

	_, err = fmt.Fprintf(w, "\nInstruction Microcode:\n")
	if err != nil {
		return
	}
	for _, desc := range t.descriptors {
		inst := t.ops[desc.Opcode]
		_, err = fmt.Fprintf(w, "\n[0x%02X] %v\n", inst.Opcode, inst.Name)
		if err != nil {
			return
		}
		for step, word := range inst.Steps {
			addr := uint16(inst.Opcode)<<3 | uint16(step)
			_, err = fmt.Fprintf(w, "  T%d: [0x%03X] 0x%04X  %v\n", step, addr, uint16(word), word)
			if err != nil {
				return
			}
		}
	}

	_, err = fmt.Fprintf(w, "\nROM Size: %d words\n", ROM_WORDS)
	return
}
