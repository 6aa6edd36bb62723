package export

import (
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

var (
	// DefaultWriteEncodings is the M3U write order: single-byte codepages only.
	DefaultWriteEncodings = []string{"windows-1252", "iso-8859-1", "iso-8859-15", "ibm850"}
	// DefaultReadEncodings is the M3U read-back order.
	DefaultReadEncodings = []string{"utf-8", "windows-1252", "iso-8859-1", "ibm850"}
)

// bom is the UTF-8 byte-order mark as a string.
const bom = "\ufeff"

// heuristicLines is how many content lines are checked for a wrong decode.
const heuristicLines = 20

var known = map[string]encoding.Encoding{
	"utf-8":        unicode.UTF8,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"ibm850":       charmap.CodePage850,
	"cp850":        charmap.CodePage850,
}

// LookupEncoding resolves an encoding name, falling back to the IANA index.
func LookupEncoding(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if enc, ok := known[key]; ok {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(key)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown encoding %q", name)
	}
	if enc == nil {
		return nil, errors.Newf("encoding %q is not supported", name)
	}
	return enc, nil
}

// ValidateEncodings checks that every name resolves.
func ValidateEncodings(names []string) error {
	for _, n := range names {
		if _, err := LookupEncoding(n); err != nil {
			return err
		}
	}
	return nil
}

// encodeFirst encodes text with the first encoding able to represent all of it.
func encodeFirst(text string, names []string) ([]byte, string, error) {
	var failures []string
	for _, name := range names {
		enc, err := LookupEncoding(name)
		if err != nil {
			failures = append(failures, err.Error())
			continue
		}
		out, err := enc.NewEncoder().Bytes([]byte(text))
		if err != nil {
			failures = append(failures, name+": "+err.Error())
			continue
		}
		return out, name, nil
	}
	return nil, "", errors.Mark(
		errors.Newf("cannot encode playlist with %v: %s", names, strings.Join(failures, "; ")),
		ErrEncodingExhausted,
	)
}

// decodeFirst decodes data with the first encoding whose output passes the heuristics.
func decodeFirst(data []byte, names []string) (string, string, error) {
	var failures []string
	for _, name := range names {
		enc, err := LookupEncoding(name)
		if err != nil {
			failures = append(failures, err.Error())
			continue
		}
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			failures = append(failures, name+": "+err.Error())
			continue
		}
		text := strings.TrimPrefix(string(out), bom)
		if reason := suspicious(text); reason != "" {
			failures = append(failures, name+": "+reason)
			continue
		}
		return text, name, nil
	}
	return "", "", errors.Mark(
		errors.Newf("cannot decode playlist with %v: %s", names, strings.Join(failures, "; ")),
		ErrEncodingExhausted,
	)
}

// suspicious returns why the first content lines look wrongly decoded, or "".
func suspicious(text string) string {
	checked := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if checked >= heuristicLines {
			break
		}
		checked++

		if strings.ContainsRune(line, utf8.RuneError) {
			return "replacement characters"
		}
		if strings.Contains(line, "??") {
			return "question mark sequences"
		}
		if hasMojibake(line) {
			return "double-encoded characters"
		}
		if hasExtendedRun(line, 3) {
			return "extended latin run"
		}
	}
	return ""
}

// hasMojibake finds UTF-8 bytes read as Latin-1, such as "Ã³".
func hasMojibake(s string) bool {
	runes := []rune(s)
	for i := 0; i+1 < len(runes); i++ {
		if runes[i] != 'Ã' && runes[i] != 'Â' {
			continue
		}
		if next := runes[i+1]; next >= 0x80 && next <= 0xBF {
			return true
		}
	}
	return false
}

func hasExtendedRun(s string, n int) bool {
	run := 0
	for _, r := range s {
		if r >= 0x80 && r <= 0x24F {
			run++
			if run >= n {
				return true
			}
			continue
		}
		run = 0
	}
	return false
}
