package genome

import (
	"regexp"
	"sort"
)

// Strand of a feature relative to the record.
type Strand int8

const (
	Reverse    Strand = -1
	Unstranded Strand = 0
	Forward    Strand = 1
)

func (s Strand) String() string {
	switch s {
	case Forward:
		return "+"
	case Reverse:
		return "-"
	}
	return "."
}

// Span is a 0-based, half-open interval on the record.
type Span struct {
	Start, End int
	Strand     Strand
}

func (s Span) Len() int {
	return s.End - s.Start
}

// Feature is an annotated region, such as CDS, rRNA or tRNA.
// Start and End cover all parts of its location.
type Feature struct {
	Type       string
	Strand     Strand
	Start      int
	End        int
	Parts      []Span
	Qualifiers map[string][]string
}

// Qualifier returns the first value of the qualifier key.
func (f Feature) Qualifier(key string) string {
	if vals := f.Qualifiers[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

type Genome struct {
	Name       string    // LOCUS name.
	Accession  string    // RefSeq accession.
	Definition string    // DEFINITION line.
	Topology   string    // circular or linear.
	Length     int       // length of the genome.
	Seq        []byte    // genome sequence.
	Features   []Feature // annotated features.
}

func (g Genome) RefAcc() string {
	if acc := FindRefAcc(g.Accession); acc != "" {
		return acc
	}
	return FindRefAcc(g.Definition)
}

func FindRefAcc(s string) string {
	r := regexp.MustCompile("[A-Z][A-Z]_[A-Z]*\\d+")
	return r.FindString(s)
}

// ExtractFeatures returns the features of type typ.
// Unstranded matches features on either strand.
func (g *Genome) ExtractFeatures(typ string, strand Strand) []Feature {
	features := []Feature{}
	for _, f := range g.Features {
		if f.Type != typ {
			continue
		}
		if strand != Unstranded && f.Strand != strand {
			continue
		}
		features = append(features, f)
	}
	return features
}

// Merge concatenates records into one genome.
// Features of each record are shifted by the length of the records before it.
// The merged genome takes the name of the first record.
// It has no sequence unless every record has one.
func Merge(genomes []*Genome) *Genome {
	if len(genomes) == 0 {
		return nil
	}
	if len(genomes) == 1 {
		return genomes[0]
	}

	first := genomes[0]
	merged := &Genome{
		Name:       first.Name,
		Accession:  first.Accession,
		Definition: first.Definition,
		Topology:   first.Topology,
	}
	offset := 0
	withSeq := true
	for _, g := range genomes {
		if len(g.Seq) != g.Length {
			withSeq = false
		}
		merged.Seq = append(merged.Seq, g.Seq...)
		for _, f := range g.Features {
			merged.Features = append(merged.Features, f.shift(offset))
		}
		offset += g.Length
	}
	merged.Length = offset
	if !withSeq {
		// positions of the concatenated sequence would not match the features.
		Warn.Printf("%s: some records have no sequence, dropping the merged sequence\n", merged.Name)
		merged.Seq = nil
	}

	return merged
}

func (f Feature) shift(offset int) Feature {
	f.Start += offset
	f.End += offset
	parts := make([]Span, len(f.Parts))
	for i, p := range f.Parts {
		parts[i] = Span{Start: p.Start + offset, End: p.End + offset, Strand: p.Strand}
	}
	f.Parts = parts
	return f
}

// clip restricts the feature to [0, length) and fixes its extent.
// It reports false when nothing of the feature is left.
func (f *Feature) clip(length int) bool {
	parts := f.Parts[:0]
	for _, p := range f.Parts {
		if p.Start < 0 {
			p.Start = 0
		}
		if length > 0 && p.End > length {
			p.End = length
		}
		if p.End > p.Start {
			parts = append(parts, p)
		}
	}
	f.Parts = parts
	if len(parts) == 0 {
		return false
	}

	f.Start, f.End = parts[0].Start, parts[0].End
	for _, p := range parts[1:] {
		if p.Start < f.Start {
			f.Start = p.Start
		}
		if p.End > f.End {
			f.End = p.End
		}
	}
	return true
}

type byStart []Feature

func (s byStart) Len() int           { return len(s) }
func (s byStart) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s byStart) Less(i, j int) bool { return s[i].Start < s[j].Start }

// SortFeatures orders features by start position.
func SortFeatures(features []Feature) {
	sort.Stable(byStart(features))
}
