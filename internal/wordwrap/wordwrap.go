// Package wordwrap implements a lazy, restartable line-wrapping sequence:
// given a string and a maximum character width, it yields successive
// lines no wider than that limit, splitting on whitespace first and on
// hyphens or raw character count only when a single word would not
// otherwise fit. Unlike a byte-oriented wrapper, width is measured in
// runes so multi-byte code points count as one column each.
package wordwrap

import "unicode"

// Iterator produces successive wrapped lines from a fixed input. Its
// state is exactly the rune slice, the width, a read cursor, and a done
// flag — no other hidden state — so it can be restarted from scratch at any time
// via Reset, and advancing it performs bounded work per call.
type Iterator struct {
	runes []rune
	width int
	pos   int
	done  bool
}

// New creates an iterator over s wrapped to width columns. width must be
// at least 1; a width of 0 or less is treated as 1 to guarantee forward
// progress on oversized words.
func New(s string, width int) *Iterator {
	if width < 1 {
		width = 1
	}
	return &Iterator{runes: []rune(s), width: width}
}

// Reset rewinds the iterator to the beginning of its input, allowing the
// same Iterator to be re-walked without reallocating.
func (it *Iterator) Reset() {
	it.pos = 0
	it.done = false
}

// Next returns the next wrapped line, or ok=false once the input is
// exhausted.
func (it *Iterator) Next() (string, bool) {
	if it.done {
		return "", false
	}
	if it.pos >= len(it.runes) {
		it.done = true
		return "", false
	}

	var line []rune
	col := 0

	for it.pos < len(it.runes) {
		r := it.runes[it.pos]

		if r == '\n' {
			it.pos++
			return string(line), true
		}

		if isSpace(r) {
			start := it.pos
			for it.pos < len(it.runes) && isSpace(it.runes[it.pos]) && it.runes[it.pos] != '\n' {
				it.pos++
			}
			run := it.runes[start:it.pos]
			if col+len(run) <= it.width {
				line = append(line, run...)
				col += len(run)
				continue
			}
			// Doesn't fit: the whitespace between this line and the next
			// token is dropped entirely, per the wrap contract.
			return string(line), true
		}

		start := it.pos
		for it.pos < len(it.runes) && !isSpace(it.runes[it.pos]) {
			it.pos++
		}
		word := it.runes[start:it.pos]

		if col+len(word) <= it.width {
			line = append(line, word...)
			col += len(word)
			continue
		}

		if len(word) > it.width {
			if col > 0 {
				// Flush what we have; retry this same oversized word at
				// the start of a fresh line, where it can be hyphen- or
				// width-broken against the full width. The whitespace
				// that led up to it is dropped, not carried over.
				it.pos = start
				return string(trimTrailingSpace(line)), true
			}
			piece, consumed := breakWord(word, it.width)
			it.pos = start + consumed
			return string(piece), true
		}

		// Word fits within width but not on the remainder of this line:
		// becomes the first token of the next line. The whitespace
		// between is dropped, not carried over.
		it.pos = start
		return string(trimTrailingSpace(line)), true
	}

	it.done = true
	return string(line), true
}

// trimTrailingSpace drops whitespace runes dangling at the end of a line
// that is being cut short by a wrap, per the rule that whitespace between
// a line and the word pushed to the next line is dropped entirely.
func trimTrailingSpace(line []rune) []rune {
	end := len(line)
	for end > 0 && isSpace(line[end-1]) {
		end--
	}
	return line[:end]
}

// breakWord splits the prefix of an oversized word at the last hyphen
// that still fits within limit characters, keeping the hyphen on the
// returned piece; if no hyphen falls within the limit, it hard-breaks at
// exactly limit characters.
func breakWord(word []rune, limit int) (piece []rune, consumed int) {
	if len(word) <= limit {
		return word, len(word)
	}
	bestHyphen := -1
	for i := 0; i < limit && i < len(word); i++ {
		if word[i] == '-' {
			bestHyphen = i
		}
	}
	if bestHyphen >= 0 {
		return word[:bestHyphen+1], bestHyphen + 1
	}
	return word[:limit], limit
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}
