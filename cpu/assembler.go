// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
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
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":         "0",
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
	"ROM_SIZE":       fmt.Sprintf("%v", ROM_SIZE),
	"RAM_SIZE":       fmt.Sprintf("%v", RAM_SIZE),
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reLabel      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// RawLine is a raw instruction and the source line it came from.
type RawLine struct {
	RawInstruction
	LineNo int
	Line   string
}

// Assembler is a two pass assembler for the sim16 processor.
//
// The first pass recognizes each line, collecting raw instructions,
// label definitions and data words. The second pass builds the label
// table and encodes every raw instruction against it.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	Raw    []RawLine         // Raw instructions, in program order.
	Labels []LabelDef        // Label definitions, in source order.
	Data   []uint16          // Initial data block.
	Equate map[string]string // Map of equates.

	predefine map[string]string // Predefines
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the 16-bit value of a data word.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	invert := false
	if strings.HasPrefix(word, "~") {
		invert = true
		word = word[1:]
	}

	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil || v64 > 0xffff || v64 < -0x8000 {
		err = ErrParseNumber(word)
		return
	}

	value = uint16(v64)
	if invert {
		value = ^value
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
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
		err = errors.Join(ErrParseExpression(expr), err)
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

// expand substitutes character literals and $() expressions.
func (asm *Assembler) expand(line string) (out string, err error) {
	// Do 'x' evaluations
	out = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	out = reExpression.ReplaceAllStringFunc(out, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})

	return
}

// equate returns the equate value of a word, or the word itself.
func (asm *Assembler) equate(word string) string {
	value, ok := asm.Equate[word]
	if ok {
		return value
	}
	return word
}

// operands splits a comma separated operand list.
func (asm *Assembler) operands(text string) (words []string) {
	for _, word := range strings.Split(text, ",") {
		words = append(words, asm.equate(strings.TrimSpace(word)))
	}
	return
}

// parseLine recognizes a single line of source.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line, err = asm.expand(line)
	if err != nil {
		return
	}

	// label: ...
	for {
		words := strings.Fields(line)
		if len(words) == 0 {
			return
		}
		if !strings.HasSuffix(words[0], ":") {
			break
		}
		label := strings.TrimSuffix(words[0], ":")
		if !reLabel.MatchString(label) {
			err = ErrSyntaxInvalid
			return
		}
		asm.Labels = append(asm.Labels, LabelDef{Name: label, Index: len(asm.Raw), LineNo: lineno})
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), words[0]))
	}

	mnemonic, rest := line, ""
	if n := strings.IndexAny(line, " \t"); n >= 0 {
		mnemonic, rest = line[:n], strings.TrimSpace(line[n:])
	}

	switch mnemonic {
	case ".equ":
		// .equ CONST VALUE
		words := strings.Fields(rest)
		if len(words) != 2 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[0]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[0]] = words[1]
		return
	case ".data":
		// .data VALUE, VALUE, ...
		if len(rest) == 0 {
			err = ErrDataInvalid
			return
		}
		for _, word := range asm.operands(rest) {
			var value uint16
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			asm.Data = append(asm.Data, value)
		}
		return
	}

	if strings.HasPrefix(mnemonic, ".") || len(rest) == 0 {
		err = ErrSyntaxInvalid
		return
	}

	operands := asm.operands(rest)
	if len(operands) > int(SHAPE_REG3) {
		err = ErrSyntaxInvalid
		return
	}
	shape := Shape(len(operands))
	if shape == SHAPE_LABEL && strings.ContainsAny(operands[0], " \t") {
		err = ErrSyntaxInvalid
		return
	}

	raw, err := NewRawInstruction(shape, append([]string{mnemonic}, operands...))
	if err != nil {
		return
	}

	asm.Raw = append(asm.Raw, RawLine{RawInstruction: raw, LineNo: lineno, Line: line})

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	asm.Raw = asm.Raw[:0]
	asm.Labels = asm.Labels[:0]
	asm.Data = asm.Data[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		err = asm.parseLine(line, lineno)
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog, err = asm.Link()
	return
}

// Link builds the label table from the first pass, and encodes
// every raw instruction. The first failure aborts the link.
func (asm *Assembler) Link() (prog *Program, err error) {
	if len(asm.Raw) == 0 || len(asm.Raw) > ROM_SIZE || len(asm.Data) > RAM_SIZE {
		err = ErrMalformedFile
		return
	}

	table, err := BuildLabelTable(asm.Labels)
	if err != nil {
		return
	}

	prog = &Program{
		Codes:  make([]Code, len(asm.Raw)),
		Data:   slices.Clone(asm.Data),
		Lines:  make([]int, len(asm.Raw)),
		Labels: maps.Clone(table),
	}

	for n, raw := range asm.Raw {
		prog.Codes[n], err = table.Encode(raw.RawInstruction)
		if err != nil {
			err = &ErrSyntax{LineNo: raw.LineNo, Line: raw.Line, Err: err}
			prog = nil
			return
		}
		prog.Lines[n] = raw.LineNo

		if asm.Verbose {
			log.Printf("%03x: %v", n, prog.Codes[n])
		}
	}

	return
}
