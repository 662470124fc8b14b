package cpu

import (
	"encoding/binary"
	"errors"
	"iter"
	"maps"
	"slices"
)

// Program is an assembled program image: the instruction codes for the
// ROM and the initial data block for the RAM.
type Program struct {
	Codes  []Code         // Encoded instructions, one per ROM line.
	Data   []uint16       // Initial RAM contents.
	Lines  []int          // Source line number of each code, if known.
	Labels map[string]int // Resolved labels.
}

// Validate checks the image sizes and that every code decodes.
func (prog *Program) Validate() (err error) {
	if len(prog.Codes) > ROM_SIZE || len(prog.Data) > RAM_SIZE {
		return ErrMalformedFile
	}

	for _, code := range prog.Codes {
		if !code.Valid() {
			return errors.Join(ErrOpcode(code), ErrOpcodeDecode)
		}
	}

	return
}

// LineNo returns the source line number of the code at ROM line ip.
func (prog *Program) LineNo(ip uint32) int {
	if ip >= uint32(len(prog.Lines)) {
		return 0
	}

	return prog.Lines[ip]
}

// LabelsAt returns the sorted labels resolved to ROM line ip.
func (prog *Program) LabelsAt(ip int) (labels []string) {
	for _, label := range slices.Sorted(maps.Keys(prog.Labels)) {
		if prog.Labels[label] == ip {
			labels = append(labels, label)
		}
	}

	return
}

// Binary returns the instruction words.
func (prog *Program) Binary() (bins []uint16) {
	for _, code := range prog.Codes {
		bins = append(bins, uint16(code))
	}

	return
}

// All iterates over the ROM lines and their codes.
func (prog *Program) All() iter.Seq2[int, Code] {
	return slices.All(prog.Codes)
}

// MarshalBinary encodes the image as big endian words:
// code count, data count, codes, then data.
func (prog *Program) MarshalBinary() (data []byte, err error) {
	err = prog.Validate()
	if err != nil {
		return
	}

	data = make([]byte, 0, 4+2*(len(prog.Codes)+len(prog.Data)))
	data = binary.BigEndian.AppendUint16(data, uint16(len(prog.Codes)))
	data = binary.BigEndian.AppendUint16(data, uint16(len(prog.Data)))
	for _, code := range prog.Codes {
		data = binary.BigEndian.AppendUint16(data, uint16(code))
	}
	for _, word := range prog.Data {
		data = binary.BigEndian.AppendUint16(data, word)
	}

	return
}

// UnmarshalBinary decodes an image written by MarshalBinary.
// Source lines and labels are not part of the image.
func (prog *Program) UnmarshalBinary(data []byte) (err error) {
	if len(data) < 4 {
		return ErrMalformedFile
	}

	codes := int(binary.BigEndian.Uint16(data[0:]))
	words := int(binary.BigEndian.Uint16(data[2:]))
	data = data[4:]
	if len(data) != 2*(codes+words) {
		return ErrMalformedFile
	}

	image := Program{
		Codes: make([]Code, codes),
		Data:  make([]uint16, words),
	}
	for n := range image.Codes {
		image.Codes[n] = Code(binary.BigEndian.Uint16(data[2*n:]))
	}
	data = data[2*codes:]
	for n := range image.Data {
		image.Data[n] = binary.BigEndian.Uint16(data[2*n:])
	}

	err = image.Validate()
	if err != nil {
		return
	}

	*prog = image
	return
}
