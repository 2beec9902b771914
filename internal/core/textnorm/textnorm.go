// Package textnorm normalizes free-form task text before it reaches the
// temporal matcher or the parse log. Pipeline: strip control characters,
// repair UTF-8, NFKC, case fold, fullwidth fold, collapse whitespace
package textnorm

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Cf)), // ZWJ, ZWNJ, BOM and friends
			width.Fold,
		)
	},
}

// Normalize returns the canonical form of s. Deterministic and safe for
// concurrent use, so matcher memoization stays coherent across callers
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = StripControls(s)
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	return collapseSpaces(ns)
}

// StripControls drops NUL, ASCII controls other than tab/newline/CR, DEL
// and the C1 range, plus invalid UTF-8 bytes. Returns s unchanged when
// nothing needs cleaning
func StripControls(s string) string {
	clean := true
	for i := 0; i < len(s); {
		b := s[i]
		if b < 0x20 && b != '\n' && b != '\r' && b != '\t' {
			clean = false
			break
		}
		if b == 0x7F {
			clean = false
			break
		}
		if b < 0x80 {
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if (r == utf8.RuneError && size == 1) || (r >= 0x80 && r <= 0x9F) {
			clean = false
			break
		}
		i += size
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteRune(r)
		case r < 0x20 || r == 0x7F || (r >= 0x80 && r <= 0x9F):
			// drop
		case r == utf8.RuneError:
			// drop replacement produced from invalid bytes
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
