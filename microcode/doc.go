// Package microcode defines the SAP-8 control word and the microcode
// table that maps (opcode, micro-step) to a control word.
//
// A table is built once from an instruction specification and validated
// exhaustively at that point: bus-source conflicts, cycle-count
// mismatches and ROM capacity overflows are build errors, never runtime
// surprises. The built table is immutable and can be exported as a raw
// ROM image, an Intel HEX file, or a symbolic listing.
package microcode
