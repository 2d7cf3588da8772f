// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/sap8/microcode"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Line is one source line and the bytes it assembled to.
type Line struct {
	LineNo int
	Addr   int
	Source string
	Bytes  []byte

	linkLabel string // unresolved operand label, patched after parse
}

// Program is an assembled byte image with per-line debug mapping.
type Program struct {
	Origin int
	Lines  []Line
}

// Size returns the program length in bytes.
func (prog *Program) Size() (size int) {
	for _, line := range prog.Lines {
		size += len(line.Bytes)
	}
	return
}

// Bytes returns the flattened program image, loadable at Origin.
func (prog *Program) Bytes() (data []byte) {
	for _, line := range prog.Lines {
		data = append(data, line.Bytes...)
	}
	return
}

// LineAt maps a memory address back to the source line assembled there.
func (prog *Program) LineAt(addr int) (line Line, ok bool) {
	for _, l := range prog.Lines {
		if addr >= l.Addr && addr < l.Addr+len(l.Bytes) {
			line = l
			ok = true
			return
		}
	}
	return
}

// Assembler is a single pass assembler for the SAP-8 instruction set.
// Mnemonics and operand arity come from the microcode table, so the
// assembler can never emit an opcode the CPU cannot decode.
type Assembler struct {
	Verbose bool
	Table   *microcode.Table

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
	Label     map[string]int    // Map of labels to byte addresses.

	mnemonic map[string]microcode.Descriptor
	origin   int
	lines    []Line
}

// Predefine defines a new equate or redefines an existing equate.
func (a *Assembler) Predefine(equ string, value string) {
	if a.predefine == nil {
		a.predefine = map[string]string{equ: value}
	} else {
		a.predefine[equ] = value
	}
}

// valueOf returns the byte value of a simple word.
func (a *Assembler) valueOf(word string) (value uint8, err error) {
	v64, perr := strconv.ParseInt(word, 0, 16)
	if perr != nil {
		err = ErrParseNumber(word)
		return
	}
	if v64 < -128 || v64 > 255 {
		err = ErrByteRange
		return
	}

	value = uint8(v64)
	return
}

// parenEval does compile-time $(...) evaluations.
func (a *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range a.Equate {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// currentAddr gets the address of the next byte to assemble.
func (a *Assembler) currentAddr() (addr int) {
	addr = a.origin
	for _, line := range a.lines {
		addr += len(line.Bytes)
	}
	return
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// parseLine expands character quotes, $() expressions, equates and
// label definitions, and returns the remaining words.
func (a *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	a.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "\\":
				str = "\\"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := a.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = slices.DeleteFunc(strings.Split(line, " "), func(w string) bool { return len(w) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := a.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		a.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words[1:] {
		equate, ok := a.Equate[word]
		if ok {
			words[1+n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := a.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		a.Label[label] = a.currentAddr()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// parseWords assembles a directive or instruction into bytes.
func (a *Assembler) parseWords(words []string, lineno int, source string) (err error) {
	if len(words) == 0 {
		return
	}

	emit := func(data []byte, link string) {
		a.lines = append(a.lines, Line{
			LineNo:    lineno,
			Addr:      a.currentAddr(),
			Source:    source,
			Bytes:     data,
			linkLabel: link,
		})
	}

	switch words[0] {
	case ".org":
		if len(words) != 2 {
			err = ErrOrgSyntax
			return
		}
		if len(a.lines) != 0 {
			err = ErrOrgLate
			return
		}
		var value uint8
		value, err = a.valueOf(words[1])
		if err != nil {
			return
		}
		a.origin = int(value)
		return
	case ".byte":
		if len(words) < 2 {
			err = ErrByteSyntax
			return
		}
		var data []byte
		for _, word := range words[1:] {
			var value uint8
			value, err = a.valueOf(word)
			if err != nil {
				return
			}
			data = append(data, value)
		}
		emit(data, "")
		return
	}

	desc, ok := a.mnemonic[strings.ToUpper(words[0])]
	if !ok {
		err = ErrMnemonicUnknown(words[0])
		return
	}

	data := []byte{desc.Opcode}
	link := ""
	switch {
	case desc.Operands == 0 && len(words) > 1:
		err = ErrOperandExtra
		return
	case desc.Operands == 1 && len(words) < 2:
		err = ErrOperandMissing
		return
	case desc.Operands == 1 && len(words) > 2:
		err = ErrOperandExtra
		return
	case desc.Operands == 1:
		value, verr := a.valueOf(words[1])
		if verr != nil {
			if !identRe.MatchString(words[1]) {
				err = verr
				return
			}
			// A label reference; patched after parsing completes.
			link = words[1]
			value = 0
		}
		data = append(data, value)
	}

	emit(data, link)
	return
}

// Parse parses an input stream into an assembled Program.
func (a *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	a.Label = make(map[string]int, 16)
	a.Equate = maps.Clone(sysEquate)
	for attr, val := range a.predefine {
		a.Equate[attr] = val
	}
	a.origin = 0
	a.lines = a.lines[:0]

	a.mnemonic = make(map[string]microcode.Descriptor)
	for _, desc := range a.Table.Descriptors() {
		a.mnemonic[strings.ToUpper(desc.Name)] = desc
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if a.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(strings.ReplaceAll(text_comment[0], "\t", " "))

		var words []string
		words, err = a.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = a.parseWords(words, lineno, line)
		if err != nil {
			return
		}
	}

	// Final linking of address labels.
	for n := range a.lines {
		l := &a.lines[n]
		if len(l.linkLabel) == 0 {
			continue
		}
		addr, ok := a.Label[l.linkLabel]
		if !ok {
			lineno, line = l.LineNo, l.Source
			err = ErrLabelMissing(l.linkLabel)
			return
		}
		l.Bytes[len(l.Bytes)-1] = byte(addr)
	}

	prog = &Program{
		Origin: a.origin,
		Lines:  slices.Clone(a.lines),
	}

	return
}
