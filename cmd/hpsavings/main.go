// Hpsavings runs the heat-pump cost-savings model over a configuration
// directory and writes the tidy results to a timestamped CSV.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/switchbox-data/reports2/hpconfig"
	"github.com/switchbox-data/reports2/hpmodel"
	"github.com/switchbox-data/reports2/hpreport"
)

var (
	dataDir   = flag.String("data", "data", "directory holding the model configuration files")
	outputDir = flag.String("out", "output", "directory to write results CSV to")
	printOnly = flag.Bool("print", false, "print the tidy results to stdout without saving")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: hpsavings [flags]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := hpconfig.Load(*dataDir)
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}
	m, err := hpmodel.NewModel(cfg)
	if err != nil {
		log.Fatalf("cannot build model: %v", err)
	}
	rows, err := m.Run(nil)
	if err != nil {
		log.Fatalf("model run failed: %v", err)
	}
	tidy := hpreport.Build(rows)

	if *printOnly {
		if err := tidy.WriteCSV(os.Stdout, hpreport.GitCommit("."), time.Now().UTC()); err != nil {
			log.Fatal(err)
		}
		return
	}
	path, err := tidy.Save(*outputDir)
	if err != nil {
		log.Fatalf("cannot save results: %v", err)
	}
	log.Printf("results saved to %s", path)
}
