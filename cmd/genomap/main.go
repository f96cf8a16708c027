package main

import (
	"log"
	"os"

	"github.com/mingzhi/genomap"
	"github.com/mingzhi/genomap/cache"
	"github.com/mingzhi/genomap/circos"
	"github.com/mingzhi/genomap/gc"
	"github.com/mingzhi/genomap/genome"
	"gonum.org/v1/plot/vg"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	INFO  *log.Logger
	WARN  *log.Logger
	ERROR *log.Logger
)

func main() {
	registerLogger()

	cmd := cmdConfig{}
	app := kingpin.New("genomap", "Draw a circular map of a bacterial genome.")
	app.Version("v0.1")
	app.Arg("input", "GenBank file (.gbk or .gbk.gz), or FASTA file with --gff").Required().StringVar(&cmd.input)
	app.Flag("gff", "GFF3 annotation file").Default("").StringVar(&cmd.gffFile)
	app.Flag("out", "output figure; the extension picks png, svg, pdf, eps, jpg or tif").Short('o').Default("").StringVar(&cmd.outFile)
	app.Flag("workspace", "workspace").Short('w').Default("").StringVar(&cmd.workspace)
	app.Flag("config", "configure file in YAML format").Short('c').Default("").StringVar(&cmd.config)
	app.Flag("title", "figure title, derived from the record by default").Default("").StringVar(&cmd.title)
	app.Flag("size", "figure width and height in inches").Default("0").Float64Var(&cmd.size)
	app.Flag("window", "GC window size").Default("0").IntVar(&cmd.window)
	app.Flag("step", "GC step size").Default("0").IntVar(&cmd.step)
	app.Flag("cache", "bolt database caching GC series").Default("").StringVar(&cmd.cacheFile)
	app.Flag("progress", "show progress").Default("false").BoolVar(&cmd.progress)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	cmd.ParseConfig()
	cmd.Run()
}

func registerLogger() {
	INFO = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WARN = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	ERROR = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	genomap.Info, genomap.Warn = INFO, WARN
	genome.Info, genome.Warn = INFO, WARN
}

// Run loads the genome, draws it and saves the figure.
func (cmd *cmdConfig) Run() {
	gc.ShowProgress = cmd.progress

	var genomes []*genome.Genome
	var err error
	if cmd.gffFile != "" {
		genomes, err = genome.LoadGFF(cmd.gffFile, cmd.input)
	} else {
		genomes, err = genome.LoadGenbank(cmd.input)
	}
	if err != nil {
		ERROR.Fatalln(err)
	}
	if len(genomes) > 1 {
		WARN.Printf("%s holds %d records, drawing them end to end\n", cmd.input, len(genomes))
	}
	g := genome.Merge(genomes)

	opts := genomap.Options{Source: cmd.input}
	if cmd.cacheFile != "" {
		c, err := cache.Open(cmd.cacheFile)
		if err != nil {
			ERROR.Fatalln(err)
		}
		defer c.Close()
		opts.Cache = c
	}

	p, err := genomap.Draw(g, cmd.layout, opts)
	if err != nil {
		ERROR.Fatalln(err)
	}

	size := vg.Length(cmd.size) * vg.Inch
	if err := circos.Save(p, size, size, cmd.outFile); err != nil {
		ERROR.Fatalf("Cannot save figure: %v\n", err)
	}
	INFO.Printf("Genome map was saved to %s\n", cmd.outFile)
}
