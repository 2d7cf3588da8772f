// Package clock provides the edge sources that drive the SAP-8 CPU.
//
// Three interchangeable backends satisfy the same Clock contract: a pure
// software timer, a simulated hardware-timer interrupt, and a fixed-period
// RC oscillator. The CPU core only subscribes to rising/falling edges and
// never branches on which backend is active; wall-clock timing differs per
// backend but the logical edge sequence for a given program is identical.
package clock
