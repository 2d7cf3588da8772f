// Package cpu implements the SAP-8 microcoded processor core.
//
// The core is edge-driven: a clock backend supplies rising and falling
// edges, the Sequencer selects a control word for each edge pair from
// the microcode table, and the Datapath interprets that word against
// the shared bus, the register file, the ALU and memory. Bus sources
// drive on the rising edge; destinations latch on the falling edge.
//
// The CPU does not own its timing source. It subscribes to whichever
// clock backend is attached, and the logical edge sequence for a given
// program is identical across backends.
package cpu
