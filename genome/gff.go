package genome

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
)

// GFF3 columns.
const (
	gffSeqID = iota
	gffSource
	gffType
	gffStart
	gffEnd
	gffScore
	gffStrand
	gffPhase
	gffAttributes
	gffColumns
)

// Annotation is a feature read from a GFF3 file
// together with the sequence it lies on.
type Annotation struct {
	SeqID string
	Feature
}

// ReadGFF parses the feature lines of a GFF3 file.
// Comments and pragmas are skipped, and reading stops at a ##FASTA section.
// Lines sharing type and ID on the same sequence are joined into one
// feature with several parts.
func ReadGFF(r io.Reader) ([]Annotation, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	var annotations []Annotation
	index := make(map[string]int)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.HasPrefix(line, "##FASTA") {
			break
		}
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		a, err := parseGFFLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Err: err}
		}

		id := a.Qualifier("ID")
		if id == "" {
			annotations = append(annotations, a)
			continue
		}
		key := a.SeqID + "\t" + a.Type + "\t" + id
		if i, found := index[key]; found {
			prev := &annotations[i]
			prev.Parts = append(prev.Parts, a.Parts...)
			prev.clip(0)
			continue
		}
		index[key] = len(annotations)
		annotations = append(annotations, a)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return annotations, nil
}

func parseGFFLine(line string) (Annotation, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != gffColumns {
		return Annotation{}, fmt.Errorf("expected %d columns, got %d", gffColumns, len(fields))
	}

	start, err := strconv.Atoi(fields[gffStart])
	if err != nil {
		return Annotation{}, fmt.Errorf("bad start %q", fields[gffStart])
	}
	end, err := strconv.Atoi(fields[gffEnd])
	if err != nil {
		return Annotation{}, fmt.Errorf("bad end %q", fields[gffEnd])
	}
	if start < 1 || end < start {
		return Annotation{}, fmt.Errorf("bad range %d..%d", start, end)
	}

	strand := Unstranded
	switch fields[gffStrand] {
	case "+":
		strand = Forward
	case "-":
		strand = Reverse
	}

	attrs, err := parseGFFAttributes(fields[gffAttributes])
	if err != nil {
		return Annotation{}, err
	}

	f := Feature{
		Type:       fields[gffType],
		Strand:     strand,
		Start:      start - 1,
		End:        end,
		Parts:      []Span{{Start: start - 1, End: end, Strand: strand}},
		Qualifiers: attrs,
	}
	return Annotation{SeqID: fields[gffSeqID], Feature: f}, nil
}

// parseGFFAttributes splits "key=value;key=v1,v2" pairs.
// Values are percent-decoded.
func parseGFFAttributes(s string) (map[string][]string, error) {
	attrs := map[string][]string{}
	if s == "." {
		return attrs, nil
	}
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		i := strings.Index(pair, "=")
		if i <= 0 {
			return nil, fmt.Errorf("bad attribute %q", pair)
		}
		key := pair[:i]
		for _, v := range strings.Split(pair[i+1:], ",") {
			value, err := url.PathUnescape(v)
			if err != nil {
				return nil, fmt.Errorf("attribute %s: %v", key, err)
			}
			attrs[key] = append(attrs[key], value)
		}
	}
	return attrs, nil
}
