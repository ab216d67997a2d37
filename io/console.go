package io

import (
	"io"
	"iter"
	"maps"
)

const (
	// LINE_DEFAULT is the line length used when a program asks for zero.
	LINE_DEFAULT = 64
	// LINE_MAX bounds the length of a single line read.
	LINE_MAX = 256
)

// Console provides the character stream of a running program. It wraps an
// io.Reader for input and an io.Writer for output. Either may be nil: a nil
// input is always at end of file and a nil output discards.
type Console struct {
	Input  io.Reader
	Output io.Writer
	Echo   bool // Echo line input to the output, as a terminal would.
}

// Defines returns the console limits as assembler equates.
func (con *Console) Defines() iter.Seq2[string, int64] {
	return maps.All(map[string]int64{
		"LINE_DEFAULT": LINE_DEFAULT,
		"LINE_MAX":     LINE_MAX,
	})
}

// Getc reads a single byte.
func (con *Console) Getc() (value byte, err error) {
	if con.Input == nil {
		err = io.EOF
		return
	}
	var one [1]byte
	for {
		var n int
		n, err = con.Input.Read(one[:])
		if n == 1 {
			value = one[0]
			err = nil
			return
		}
		if err != nil {
			return
		}
	}
}

// Write sends bytes to the output.
func (con *Console) Write(data []byte) (n int, err error) {
	if con.Output == nil {
		n = len(data)
		return
	}
	return con.Output.Write(data)
}

// Putc writes a single byte.
func (con *Console) Putc(value byte) (err error) {
	_, err = con.Write([]byte{value})
	return
}

// Puts writes a string.
func (con *Console) Puts(text string) (err error) {
	_, err = io.WriteString(con, text)
	return
}

// ReadLine reads up to limit-1 bytes, stopping at a carriage return or line
// feed which is not stored. Backspace and delete remove the previous byte.
// A limit of zero selects LINE_DEFAULT, and limits above LINE_MAX are
// clamped. End of input terminates the line without error once any byte has
// been read.
func (con *Console) ReadLine(limit int) (line []byte, err error) {
	if limit <= 0 {
		limit = LINE_DEFAULT
	}
	limit = min(limit, LINE_MAX)

	line = make([]byte, 0, limit)
	read := false
	for len(line) < limit-1 {
		var c byte
		c, err = con.Getc()
		if err != nil {
			if read && err == io.EOF {
				err = nil
			}
			return
		}
		read = true

		switch c {
		case '\r', '\n':
			if con.Echo {
				err = con.Putc('\n')
			}
			return
		case 8, 127:
			if len(line) > 0 {
				line = line[:len(line)-1]
				if con.Echo {
					err = con.Puts("\b \b")
				}
			}
			continue
		}

		line = append(line, c)
		if con.Echo {
			err = con.Putc(c)
			if err != nil {
				return
			}
		}
	}

	return
}
