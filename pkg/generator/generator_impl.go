package generator

import (
	"bytes"
	"strings"
)

type sourceGenerator struct {
	buf              bytes.Buffer // The buffer for the new source code.
	indentationLevel int          // The current indentation level.
	hasNewline       bool         // Whether there is a newline at the end of the buffer.
	hasBlankline     bool         // Whether there is a blank line at the end of the buffer.
}

// ensureBlankLine ensures that there is a blank line at the tail of the
// buffer. If not, a new line is added.
func (sg *sourceGenerator) ensureBlankLine() {
	if !sg.hasBlankline {
		sg.appendLine()
	}
}

// indent increases the current indentation.
func (sg *sourceGenerator) indent() {
	sg.indentationLevel = sg.indentationLevel + 1
}

// dedent decreases the current indentation.
func (sg *sourceGenerator) dedent() {
	sg.indentationLevel = sg.indentationLevel - 1
}

// append adds the given value to the buffer, indenting as necessary.
func (sg *sourceGenerator) append(value string) {
	for _, currentRune := range value {
		if currentRune == '\n' {
			if sg.hasNewline {
				sg.hasBlankline = true
			}

			sg.buf.WriteRune('\n')
			sg.hasNewline = true
			continue
		}

		sg.hasBlankline = false

		if sg.hasNewline {
			sg.buf.WriteString(strings.Repeat("\t", sg.indentationLevel))
			sg.hasNewline = false
		}

		sg.buf.WriteRune(currentRune)
	}
}

// appendLine adds a newline.
func (sg *sourceGenerator) appendLine() {
	sg.append("\n")
}
