package microcode

// DefaultSet is the SAP-8 instruction set. Execute steps only; the
// universal FetchSteps pair precedes every instruction.
//
// Opcode values for HLT, LDI_A, LDI_B, STA, ADD and OUT_A are fixed by
// existing ROM images and may not change.
func DefaultSet() []Instruction {
	return []Instruction{
		{
			Name: "NOP", Opcode: 0x00, Operands: 0, Cycles: 1,
			Steps: []ControlWord{
				Word(),
			},
		},
		{
			Name: "HLT", Opcode: 0x01, Operands: 0, Cycles: 1,
			Steps: []ControlWord{
				Word(HALT),
			},
		},
		{
			Name: "LDI_A", Opcode: 0x02, Operands: 1, Cycles: 2,
			Steps: []ControlWord{
				Word(PC_OUT, MAR_IN),
				Word(RAM_OUT, A_IN, PC_INC),
			},
		},
		{
			Name: "LDI_B", Opcode: 0x03, Operands: 1, Cycles: 2,
			Steps: []ControlWord{
				Word(PC_OUT, MAR_IN),
				Word(RAM_OUT, B_IN, PC_INC),
			},
		},
		{
			Name: "LDA", Opcode: 0x04, Operands: 1, Cycles: 3,
			Steps: []ControlWord{
				Word(PC_OUT, MAR_IN),
				Word(RAM_OUT, MAR_IN, PC_INC),
				Word(RAM_OUT, A_IN),
			},
		},
		{
			Name: "LDB", Opcode: 0x05, Operands: 1, Cycles: 3,
			Steps: []ControlWord{
				Word(PC_OUT, MAR_IN),
				Word(RAM_OUT, MAR_IN, PC_INC),
				Word(RAM_OUT, B_IN),
			},
		},
		{
			Name: "STA", Opcode: 0x06, Operands: 1, Cycles: 3,
			Steps: []ControlWord{
				Word(PC_OUT, MAR_IN),
				Word(RAM_OUT, MAR_IN, PC_INC),
				Word(A_OUT, RAM_IN),
			},
		},
		{
			Name: "STB", Opcode: 0x07, Operands: 1, Cycles: 3,
			Steps: []ControlWord{
				Word(PC_OUT, MAR_IN),
				Word(RAM_OUT, MAR_IN, PC_INC),
				Word(B_OUT, RAM_IN),
			},
		},
		{
			Name: "ADD", Opcode: 0x08, Operands: 0, Cycles: 1,
			Steps: []ControlWord{
				Word(ALU_OUT, A_IN, FLAGS_IN),
			},
		},
		{
			Name: "SUB", Opcode: 0x09, Operands: 0, Cycles: 1,
			Steps: []ControlWord{
				Word(ALU_OUT, ALU_SUB, A_IN, FLAGS_IN),
			},
		},
		{
			Name: "MOV_AB", Opcode: 0x0a, Operands: 0, Cycles: 1,
			Steps: []ControlWord{
				Word(A_OUT, B_IN),
			},
		},
		{
			Name: "MOV_BA", Opcode: 0x0b, Operands: 0, Cycles: 1,
			Steps: []ControlWord{
				Word(B_OUT, A_IN),
			},
		},
		{
			Name: "CMP", Opcode: 0x0c, Operands: 0, Cycles: 1,
			Steps: []ControlWord{
				Word(ALU_OUT, ALU_SUB, FLAGS_IN),
			},
		},
		{
			Name: "OUT_B", Opcode: 0x0e, Operands: 0, Cycles: 1,
			Steps: []ControlWord{
				Word(B_OUT, OUT_IN),
			},
		},
		{
			Name: "OUT_A", Opcode: 0x0f, Operands: 0, Cycles: 1,
			Steps: []ControlWord{
				Word(A_OUT, OUT_IN),
			},
		},
	}
}
