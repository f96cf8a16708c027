package genome

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoRecord is returned when an input holds no sequence record.
var ErrNoRecord = errors.New("genome: no record found")

// ParseError reports a malformed line of a flat file.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("genome: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// GenBank flat file layout.
const (
	featureKeyIndent = 5
	maxLineSize      = 16 * 1024 * 1024
)

// genbankReader parses GenBank records line by line.
type genbankReader struct {
	sc     *bufio.Scanner
	lineNo int

	g       *Genome
	section string // current top-level keyword.
	seq     []byte

	// feature in progress.
	feat      *Feature
	location  string
	qualKey   string
	qualValue string
	inQual    bool
}

// ReadGenbank parses all records of a GenBank flat file.
func ReadGenbank(r io.Reader) ([]*Genome, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	gr := &genbankReader{sc: sc}

	var genomes []*Genome
	for {
		g, err := gr.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return genomes, err
		}
		genomes = append(genomes, g)
	}

	if len(genomes) == 0 {
		return nil, ErrNoRecord
	}
	return genomes, nil
}

func (gr *genbankReader) errorf(format string, args ...interface{}) error {
	return &ParseError{Line: gr.lineNo, Err: fmt.Errorf(format, args...)}
}

// next reads one record, terminated by "//" or the end of input.
func (gr *genbankReader) next() (*Genome, error) {
	gr.g = nil
	gr.seq = nil
	gr.section = ""
	for gr.sc.Scan() {
		gr.lineNo++
		line := strings.TrimRight(gr.sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, "//") {
			if gr.g == nil {
				continue
			}
			return gr.finish()
		}

		if gr.g == nil {
			if !strings.HasPrefix(line, "LOCUS") {
				return nil, gr.errorf("expected LOCUS, got %q", firstWord(line))
			}
		}

		if line[0] != ' ' {
			if err := gr.flushFeature(); err != nil {
				return nil, err
			}
			if err := gr.header(line); err != nil {
				return nil, err
			}
			continue
		}

		var err error
		switch gr.section {
		case "FEATURES":
			err = gr.featureLine(line)
		case "ORIGIN":
			gr.sequenceLine(line)
		case "DEFINITION":
			gr.g.Definition += " " + strings.TrimSpace(line)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := gr.sc.Err(); err != nil {
		return nil, err
	}

	if gr.g != nil {
		// tolerate a missing terminator on the last record.
		return gr.finish()
	}
	return nil, io.EOF
}

func (gr *genbankReader) header(line string) error {
	key := firstWord(line)
	value := ""
	if len(line) > len(key) {
		value = strings.TrimSpace(line[len(key):])
	}
	gr.section = key

	switch key {
	case "LOCUS":
		if gr.g != nil {
			return gr.errorf("LOCUS before the end of record %s", gr.g.Name)
		}
		return gr.locus(value)
	case "DEFINITION":
		gr.g.Definition = value
	case "ACCESSION":
		gr.g.Accession = firstWord(value)
	case "VERSION":
		if gr.g.Accession == "" {
			gr.g.Accession = firstWord(value)
		}
	}
	return nil
}

func (gr *genbankReader) locus(value string) error {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return gr.errorf("empty LOCUS line")
	}
	gr.g = &Genome{Name: fields[0]}
	for i, f := range fields {
		switch {
		case (f == "bp" || f == "aa") && i > 0:
			n, err := strconv.Atoi(fields[i-1])
			if err != nil {
				return gr.errorf("bad LOCUS length %q", fields[i-1])
			}
			gr.g.Length = n
		case f == "circular" || f == "linear":
			gr.g.Topology = f
		}
	}
	return nil
}

func (gr *genbankReader) featureLine(line string) error {
	if len(line) > featureKeyIndent && line[featureKeyIndent] != ' ' && strings.TrimSpace(line[:featureKeyIndent]) == "" {
		if err := gr.flushFeature(); err != nil {
			return err
		}
		fields := strings.Fields(line)
		gr.feat = &Feature{Type: fields[0], Qualifiers: map[string][]string{}}
		if len(fields) > 1 {
			gr.location = strings.Join(fields[1:], "")
		}
		return nil
	}

	if gr.feat == nil {
		// "FEATURES             Location/Qualifiers" continuation.
		return nil
	}

	text := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(text, "/") && !(gr.inQual && openQuote(gr.qualValue)):
		gr.flushQualifier()
		gr.inQual = true
		text = text[1:]
		if i := strings.Index(text, "="); i >= 0 {
			gr.qualKey, gr.qualValue = text[:i], text[i+1:]
		} else {
			gr.qualKey, gr.qualValue = text, ""
		}
	case gr.inQual:
		if gr.qualKey == "translation" {
			gr.qualValue += text
		} else {
			gr.qualValue += " " + text
		}
	default:
		gr.location += text
	}
	return nil
}

func (gr *genbankReader) flushQualifier() {
	if !gr.inQual || gr.feat == nil {
		return
	}
	v := gr.qualValue
	if strings.HasPrefix(v, "\"") {
		v = strings.TrimSuffix(v[1:], "\"")
		v = strings.Replace(v, "\"\"", "\"", -1)
	}
	gr.feat.Qualifiers[gr.qualKey] = append(gr.feat.Qualifiers[gr.qualKey], v)
	gr.inQual = false
	gr.qualKey, gr.qualValue = "", ""
}

func (gr *genbankReader) flushFeature() error {
	if gr.feat == nil {
		return nil
	}
	gr.flushQualifier()

	f := gr.feat
	loc := gr.location
	gr.feat, gr.location = nil, ""

	parts, err := ParseLocation(loc)
	if err != nil {
		return gr.errorf("feature %s: %v", f.Type, err)
	}
	f.Parts = parts
	f.Strand = partsStrand(parts)
	if f.clip(gr.g.Length) {
		gr.g.Features = append(gr.g.Features, *f)
	}
	return nil
}

func (gr *genbankReader) sequenceLine(line string) {
	for i := 0; i < len(line); i++ {
		b := line[i]
		if (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') {
			gr.seq = append(gr.seq, b)
		}
	}
}

func (gr *genbankReader) finish() (*Genome, error) {
	if err := gr.flushFeature(); err != nil {
		return nil, err
	}
	g := gr.g
	gr.g = nil
	g.Seq = gr.seq
	if len(g.Seq) > 0 {
		if g.Length != 0 && g.Length != len(g.Seq) {
			Warn.Printf("%s: LOCUS length %d differs from sequence length %d\n", g.Name, g.Length, len(g.Seq))
		}
		g.Length = len(g.Seq)
	}
	return g, nil
}

// openQuote reports whether a qualifier value has an unclosed quote.
// Quotes inside values are doubled, so the count stays even when closed.
func openQuote(v string) bool {
	return strings.Count(v, "\"")%2 == 1
}

func partsStrand(parts []Span) Strand {
	if len(parts) == 0 {
		return Unstranded
	}
	s := parts[0].Strand
	for _, p := range parts[1:] {
		if p.Strand != s {
			return Unstranded
		}
	}
	return s
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
