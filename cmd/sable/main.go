// Sable is a UCI chess engine.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/sable-chess/sable/internal/engine"
	"github.com/sable-chess/sable/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	hashMB     = flag.Int("hash", 64, "transposition table size in MB")
)

func main() {
	flag.Parse()
	if flag.NArg() > 0 {
		log.Printf("unexpected argument: %s", flag.Arg(0))
		flag.Usage()
		os.Exit(2)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	eng := engine.NewEngine(*hashMB)
	uci.New(eng).Run()
}
