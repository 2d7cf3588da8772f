package asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/sap8/microcode"
)

func newAssembler(t *testing.T) (a *Assembler) {
	t.Helper()

	table, err := microcode.NewTable(microcode.DefaultSet())
	assert.NoError(t, err)

	a = &Assembler{Table: table}
	return
}

func doParse(a *Assembler, program []string) (*Program, error) {
	return a.Parse(strings.NewReader(strings.Join(program, "\n")))
}

func TestAssemble(t *testing.T) {
	assert := assert.New(t)

	a := newAssembler(t)
	prog, err := doParse(a, []string{
		"; add two numbers and show the sum",
		".equ RESULT 0x0e",
		"start:",
		"\tldi_a 7",
		"\tldi_b 2",
		"\tadd",
		"\tsta RESULT ; store before output",
		"\tout_a",
		"\thlt",
	})
	assert.NoError(err)

	assert.Equal(0, prog.Origin)
	assert.Equal(9, prog.Size())
	assert.Equal([]byte{0x02, 0x07, 0x03, 0x02, 0x08, 0x06, 0x0e, 0x0f, 0x01}, prog.Bytes())
	assert.Equal(0, a.Label["start"])

	line, ok := prog.LineAt(5)
	assert.True(ok)
	assert.Equal(7, line.LineNo)
	assert.Equal([]byte{0x06, 0x0e}, line.Bytes)

	// Operand byte maps to the same line as its opcode.
	line, ok = prog.LineAt(6)
	assert.True(ok)
	assert.Equal(7, line.LineNo)

	_, ok = prog.LineAt(9)
	assert.False(ok)
}

func TestAssembleCase(t *testing.T) {
	assert := assert.New(t)

	a := newAssembler(t)
	prog, err := doParse(a, []string{
		"LDI_A 1",
		"Mov_Ab",
		"HLT",
	})
	assert.NoError(err)
	assert.Equal([]byte{0x02, 0x01, 0x0a, 0x01}, prog.Bytes())
}

func TestAssembleOrg(t *testing.T) {
	assert := assert.New(t)

	a := newAssembler(t)
	prog, err := doParse(a, []string{
		".org 0x04",
		"start: ldi_a start",
		"hlt",
	})
	assert.NoError(err)

	assert.Equal(4, prog.Origin)
	assert.Equal(4, a.Label["start"])
	assert.Equal([]byte{0x02, 0x04, 0x01}, prog.Bytes())

	line, ok := prog.LineAt(4)
	assert.True(ok)
	assert.Equal(2, line.LineNo)

	_, err = doParse(a, []string{
		"hlt",
		".org 0x04",
	})
	assert.ErrorIs(err, ErrOrgLate)
}

func TestAssembleByte(t *testing.T) {
	assert := assert.New(t)

	a := newAssembler(t)
	prog, err := doParse(a, []string{
		"lda data",
		"hlt",
		"data: .byte 1 2 0xff",
	})
	assert.NoError(err)
	assert.Equal([]byte{0x04, 0x03, 0x01, 0x01, 0x02, 0xff}, prog.Bytes())

	_, err = doParse(a, []string{".byte"})
	assert.ErrorIs(err, ErrByteSyntax)

	_, err = doParse(a, []string{".byte 300"})
	assert.ErrorIs(err, ErrByteRange)
}

func TestAssembleEquate(t *testing.T) {
	assert := assert.New(t)

	a := newAssembler(t)
	prog, err := doParse(a, []string{
		".equ TEN 10",
		"ldi_a TEN",
		"ldi_b $(TEN * 2)",
		"hlt",
	})
	assert.NoError(err)
	assert.Equal([]byte{0x02, 10, 0x03, 20, 0x01}, prog.Bytes())

	_, err = doParse(a, []string{
		".equ TEN 10",
		".equ TEN 11",
	})
	assert.ErrorIs(err, ErrEquateDuplicate)

	_, err = doParse(a, []string{".equ TEN"})
	assert.ErrorIs(err, ErrEquateSyntax)
}

func TestAssembleExpression(t *testing.T) {
	assert := assert.New(t)

	a := newAssembler(t)
	a.Predefine("MAX", "10")

	prog, err := doParse(a, []string{
		"ldi_a $(MAX * 2)",
		"ldi_b $(LINENO + 4)",
		"hlt",
	})
	assert.NoError(err)
	assert.Equal([]byte{0x02, 20, 0x03, 6, 0x01}, prog.Bytes())

	_, err = doParse(a, []string{"ldi_a $(bogus +)"})
	assert.Error(err)
}

func TestAssembleChar(t *testing.T) {
	assert := assert.New(t)

	a := newAssembler(t)
	prog, err := doParse(a, []string{
		"ldi_a 'A'",
		"ldi_b '\\n'",
		"hlt",
	})
	assert.NoError(err)
	assert.Equal([]byte{0x02, 65, 0x03, 10, 0x01}, prog.Bytes())
}

func TestAssembleLabels(t *testing.T) {
	assert := assert.New(t)

	a := newAssembler(t)
	prog, err := doParse(a, []string{
		"lda value",
		"sta copy",
		"hlt",
		"value: .byte 42",
		"copy: .byte 0",
	})
	assert.NoError(err)
	assert.Equal(5, a.Label["value"])
	assert.Equal(6, a.Label["copy"])
	assert.Equal([]byte{0x04, 0x05, 0x06, 0x06, 0x01, 42, 0}, prog.Bytes())

	_, err = doParse(a, []string{
		"one: hlt",
		"one: hlt",
	})
	assert.ErrorIs(err, ErrLabelDuplicate)

	_, err = doParse(a, []string{"lda nowhere", "hlt"})
	var el ErrLabelMissing
	assert.ErrorAs(err, &el)
	assert.Equal("nowhere", string(el))
}

func TestAssembleErrors(t *testing.T) {
	assert := assert.New(t)

	a := newAssembler(t)

	_, err := doParse(a, []string{"hlt", "frob"})
	var em ErrMnemonicUnknown
	assert.ErrorAs(err, &em)
	assert.Equal("frob", string(em))

	var es ErrSyntax
	assert.ErrorAs(err, &es)
	assert.Equal(2, es.LineNo)
	assert.Equal("frob", es.Line)

	_, err = doParse(a, []string{"ldi_a"})
	assert.ErrorIs(err, ErrOperandMissing)

	_, err = doParse(a, []string{"ldi_a 1 2"})
	assert.ErrorIs(err, ErrOperandExtra)

	_, err = doParse(a, []string{"hlt 1"})
	assert.ErrorIs(err, ErrOperandExtra)

	_, err = doParse(a, []string{"ldi_a 12junk"})
	var ep ErrParseNumber
	assert.ErrorAs(err, &ep)
}
