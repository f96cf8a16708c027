package genome

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

var (
	Info = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	Warn = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
)

var gzipMagic = []byte{0x1f, 0x8b}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc *readCloser) Close() error {
	var err error
	for i := len(rc.closers) - 1; i >= 0; i-- {
		if e := rc.closers[i].Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// Open opens a file for reading, decompressing it
// when it starts with the gzip magic bytes.
func Open(fileName string) (io.ReadCloser, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(f)
	magic, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		f.Close()
		return nil, err
	}
	if len(magic) == len(gzipMagic) && magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1] {
		gz, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", fileName, err)
		}
		return &readCloser{Reader: gz, closers: []io.Closer{f, gz}}, nil
	}

	return &readCloser{Reader: br, closers: []io.Closer{f}}, nil
}

// LoadGenbank reads all records of a GenBank file,
// which may be gzip compressed.
func LoadGenbank(fileName string) ([]*Genome, error) {
	rc, err := Open(fileName)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	genomes, err := ReadGenbank(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	for _, g := range genomes {
		Info.Printf("Read %s: %d bp, %d features\n", g.Name, g.Length, len(g.Features))
	}
	return genomes, nil
}

// LoadGFF reads sequences from a FASTA file and
// attaches features from a GFF3 file by sequence name.
// Features on unknown sequences are skipped.
func LoadGFF(gffFileName, fastaFileName string) ([]*Genome, error) {
	genomes, err := readFasta(fastaFileName)
	if err != nil {
		return nil, err
	}

	index := make(map[string]*Genome)
	for _, g := range genomes {
		index[g.Name] = g
	}

	rc, err := Open(gffFileName)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	annotations, err := ReadGFF(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", gffFileName, err)
	}

	skipped := 0
	for _, a := range annotations {
		g, found := index[a.SeqID]
		if !found {
			skipped++
			continue
		}
		feat := a.Feature
		if feat.clip(g.Length) {
			g.Features = append(g.Features, feat)
		}
	}
	if skipped > 0 {
		Warn.Printf("%s: skipped %d features on sequences missing from %s\n", gffFileName, skipped, fastaFileName)
	}

	for _, g := range genomes {
		SortFeatures(g.Features)
		Info.Printf("Read %s: %d bp, %d features\n", g.Name, g.Length, len(g.Features))
	}
	return genomes, nil
}

func readFasta(fileName string) ([]*Genome, error) {
	rc, err := Open(fileName)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var genomes []*Genome
	sc := seqio.NewScanner(fasta.NewReader(rc, linear.NewSeq("", nil, alphabet.DNAredundant)))
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			continue
		}
		b := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			b[i] = byte(l)
		}
		genomes = append(genomes, &Genome{
			Name:       s.Name(),
			Accession:  s.Name(),
			Definition: s.Description(),
			Length:     len(b),
			Seq:        b,
		})
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}

	if len(genomes) == 0 {
		return nil, fmt.Errorf("%s: %w", fileName, ErrNoRecord)
	}
	return genomes, nil
}
