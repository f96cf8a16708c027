package genome

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGFF = `##gff-version 3
##sequence-region chr1 1 100
# made by hand
chr1	RefSeq	region	1	100	.	+	.	ID=chr1:1..100;Dbxref=taxon:562
chr1	RefSeq	CDS	2	10	.	+	0	ID=c1;product=x
chr1	RefSeq	CDS	21	30	.	-	0	ID=c2;Name=yaaA;Note=two%3B parts
chr1	RefSeq	CDS	41	50	.	-	0	ID=c2;Name=yaaA
chr1	RefSeq	tRNA	61	70	.	-	.	ID=t1;Parent=g1,g2
chr1	RefSeq	rRNA	71	200	.	+	.	ID=r1
plasmid	RefSeq	CDS	1	10	.	+	0	ID=p1
##FASTA
>chr1
ACGT
`

func TestReadGFF(t *testing.T) {
	annotations, err := ReadGFF(strings.NewReader(testGFF))
	require.NoError(t, err)
	require.Len(t, annotations, 6)

	cds := annotations[1]
	assert.Equal(t, "chr1", cds.SeqID)
	assert.Equal(t, "CDS", cds.Type)
	assert.Equal(t, Forward, cds.Strand)
	assert.Equal(t, 1, cds.Start)
	assert.Equal(t, 10, cds.End)
	assert.Equal(t, "x", cds.Qualifier("product"))

	joined := annotations[2]
	assert.Equal(t, Reverse, joined.Strand)
	assert.Equal(t, []Span{{20, 30, Reverse}, {40, 50, Reverse}}, joined.Parts)
	assert.Equal(t, 20, joined.Start)
	assert.Equal(t, 50, joined.End)
	assert.Equal(t, "two; parts", joined.Qualifier("Note"))

	assert.Equal(t, []string{"g1", "g2"}, annotations[3].Qualifiers["Parent"])
	assert.Equal(t, "plasmid", annotations[5].SeqID)
}

func TestReadGFFErrors(t *testing.T) {
	for _, bad := range []string{
		"chr1\tsrc\tCDS\t2\t10\t.\t+\t0",
		"chr1\tsrc\tCDS\tx\t10\t.\t+\t0\tID=c1",
		"chr1\tsrc\tCDS\t10\t2\t.\t+\t0\tID=c1",
		"chr1\tsrc\tCDS\t2\t10\t.\t+\t0\tID",
	} {
		_, err := ReadGFF(strings.NewReader("##gff-version 3\n" + bad + "\n"))
		var perr *ParseError
		require.ErrorAs(t, err, &perr, bad)
		assert.Equal(t, 2, perr.Line, bad)
	}
}

func TestLoadGFF(t *testing.T) {
	dir := t.TempDir()
	gffFile := filepath.Join(dir, "chr1.gff3")
	require.NoError(t, os.WriteFile(gffFile, []byte(testGFF), 0644))
	fastaFile := filepath.Join(dir, "chr1.fna")
	fasta := ">chr1 Escherichia coli chromosome\n" + strings.Repeat("ACGTACGTAC", 10) + "\n"
	require.NoError(t, os.WriteFile(fastaFile, []byte(fasta), 0644))

	genomes, err := LoadGFF(gffFile, fastaFile)
	require.NoError(t, err)
	require.Len(t, genomes, 1)

	g := genomes[0]
	assert.Equal(t, "chr1", g.Name)
	assert.Equal(t, 100, g.Length)
	assert.Len(t, g.Seq, 100)
	require.Len(t, g.Features, 5)
	assert.Len(t, g.ExtractFeatures("CDS", Forward), 1)
	assert.Len(t, g.ExtractFeatures("CDS", Reverse), 1)

	// clipped to the sequence.
	rrna := g.ExtractFeatures("rRNA", Unstranded)
	require.Len(t, rrna, 1)
	assert.Equal(t, 70, rrna[0].Start)
	assert.Equal(t, 100, rrna[0].End)
}
