// Package accession turns the free-form "Virus GENBANK accession" field of
// the VMR into an ordered list of GenBank accession identifiers.
//
// The field accumulated several delimiter conventions over the years:
//
//	MF176343
//	MF176343; MF176344
//	MF176343;MF176344
//	DNA-A: MF176343; DNA-B: MF176344
//
// Normalize detects the convention (Mode), splits the value with a pure
// splitter dedicated to that convention, and then cleans up segments
// uniformly. The result joined by Join is the canonical form stored in the
// working table; Normalize is idempotent over the canonical form.
package accession

import (
	"regexp"
	"strings"
)

// Mode is the delimiter convention detected in a raw accession field.
type Mode int

const (
	// Single is a field with one identifier.
	Single Mode = iota
	// Semicolon separates identifiers with a bare ';'.
	Semicolon
	// SemicolonSpace separates identifiers with "; ".
	SemicolonSpace
	// ColonBlock is a list of "label: accession" blocks.
	ColonBlock
)

var modeNames = map[Mode]string{
	Single:         "Single",
	Semicolon:      "Semicolon",
	SemicolonSpace: "SemicolonSpace",
	ColonBlock:     "ColonBlock",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "Unknown"
}

// Separator joins identifiers in the canonical form.
const Separator = ";"

var accessionRe = regexp.MustCompile(`^[A-Za-z]{1,6}_?[0-9]{5,}(\.[0-9]+)?$`)

// LooksLikeAccession reports whether s has the shape of an INSDC or RefSeq
// nucleotide accession, with or without a version suffix.
func LooksLikeAccession(s string) bool {
	return accessionRe.MatchString(s)
}

// DetectMode picks the delimiter convention of a raw field. Precedence:
// ": " first, then "; ", then ";", otherwise a single identifier.
func DetectMode(raw string) Mode {
	switch {
	case strings.Contains(raw, ": "):
		return ColonBlock
	case strings.Contains(raw, "; "):
		return SemicolonSpace
	case strings.Contains(raw, ";"):
		return Semicolon
	default:
		return Single
	}
}

// Normalize converts a raw accession field into an ordered list of
// identifiers. It never fails: when no identifier can be extracted from a
// non-blank value, the trimmed value itself is returned as the only element.
// Blank values give an empty result.
func Normalize(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	res := tokenize(Segments(DetectMode(raw), raw))
	if len(res) > 0 {
		return res
	}

	res = tokenize(splitSingle(raw))
	if len(res) > 0 {
		return res
	}
	return []string{raw}
}

// Segments splits raw according to the given mode, without the uniform
// cleanup that Normalize applies afterwards.
func Segments(m Mode, raw string) []string {
	switch m {
	case ColonBlock:
		return splitColonBlock(raw)
	case SemicolonSpace:
		return splitSemicolonSpace(raw)
	case Semicolon:
		return splitSemicolon(raw)
	default:
		return splitSingle(raw)
	}
}

// Join returns the canonical representation of identifiers.
func Join(ids []string) string {
	return strings.Join(ids, Separator)
}

// Split reads the canonical representation back. Only bare ';' is
// recognized, empty elements are dropped.
func Split(canonical string) []string {
	var res []string
	for _, v := range strings.Split(canonical, Separator) {
		v = strings.TrimSpace(v)
		if v != "" {
			res = append(res, v)
		}
	}
	return res
}

// splitColonBlock keeps segments that follow ": ", cuts them at the first
// ';' and removes embedded spaces. If such a value does not look like an
// accession, but the entry right before the colon does, the latter is used
// ("MF176343: description" convention).
func splitColonBlock(raw string) []string {
	parts := strings.Split(raw, ":")
	var res []string
	for i, p := range parts {
		if !strings.HasPrefix(p, " ") {
			continue
		}
		val, _, _ := strings.Cut(p, ";")
		val = strings.ReplaceAll(val, " ", "")
		if i > 0 && !LooksLikeAccession(val) {
			if label := lastEntry(parts[i-1]); LooksLikeAccession(label) {
				val = label
			}
		}
		res = append(res, val)
	}
	return res
}

func lastEntry(s string) string {
	if idx := strings.LastIndex(s, ";"); idx >= 0 {
		s = s[idx+1:]
	}
	return strings.TrimSpace(s)
}

func splitSemicolonSpace(raw string) []string {
	return strings.Split(raw, "; ")
}

func splitSemicolon(raw string) []string {
	return strings.Split(raw, ";")
}

func splitSingle(raw string) []string {
	return []string{raw}
}

// tokenize keeps the first whitespace-delimited token of every segment,
// splits leftovers on ';' and drops empty tokens.
func tokenize(segments []string) []string {
	var res []string
	for _, s := range segments {
		fields := strings.Fields(s)
		if len(fields) == 0 {
			continue
		}
		for _, t := range strings.Split(fields[0], Separator) {
			if t != "" {
				res = append(res, t)
			}
		}
	}
	return res
}
