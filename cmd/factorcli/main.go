// Command factorcli is a thin flag-parsed demo front end over the
// factorization core (§1: the core exposes pure operations; this program
// is the replaceable external collaborator).
package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/cpirmayr/factorization/bignat"
	"github.com/cpirmayr/factorization/driver"
	"github.com/cpirmayr/factorization/measure"
)

func main() {
	nStr := flag.String("n", "", "the composite integer to factor (decimal)")
	full := flag.Bool("full", false, "factorize fully instead of returning one factor")
	algName := flag.String("algo", "auto", "engine to force: auto, cfrac, squfof, rho, rho-combined, pm1, pm1-self, pm1-powmod, pm1-ref, pplus1")
	jobs := flag.Int("j", runtime.NumCPU(), "GOMAXPROCS to use")
	diagnostics := flag.Bool("diag", false, "print instrumentation counters after the run")
	flag.Parse()

	runtime.GOMAXPROCS(*jobs)
	measure.Enabled = *diagnostics

	if *nStr == "" {
		fmt.Println("usage: factorcli -n <integer> [-full] [-algo <name>] [-diag]")
		return
	}
	n, err := bignat.FromString(*nStr)
	if err != nil {
		log.Fatalf("parse n: %v", err)
	}

	alg, err := parseAlgorithm(*algName)
	if err != nil {
		log.Fatalf("parse algo: %v", err)
	}

	if *full {
		factors := driver.Factorize(n)
		fmt.Printf("%s = ", n)
		for i, f := range factors {
			if i > 0 {
				fmt.Print(" * ")
			}
			fmt.Print(f)
		}
		fmt.Println()
	} else {
		eng := driver.ChooseAlgorithm(alg)
		f := eng(n)
		if f == nil {
			fmt.Printf("%s: no factor found\n", n)
		} else {
			fmt.Printf("%s: factor %s (cofactor %s)\n", n, f, bignat.Div(n, f))
		}
	}

	if *diagnostics {
		for k, v := range measure.Global.SnapshotAndReset() {
			fmt.Printf("  %-28s %d\n", k, v)
		}
	}
}

func parseAlgorithm(name string) (driver.Algorithm, error) {
	switch name {
	case "", "auto":
		return driver.AlgorithmAuto, nil
	case "cfrac":
		return driver.AlgorithmCFRAC, nil
	case "squfof":
		return driver.AlgorithmSQUFOF, nil
	case "rho":
		return driver.AlgorithmPollardRhoStandard, nil
	case "rho-combined":
		return driver.AlgorithmPollardRhoCombined, nil
	case "pm1":
		return driver.AlgorithmPollardPm1Standard, nil
	case "pm1-self":
		return driver.AlgorithmPollardPm1SelfReferential, nil
	case "pm1-powmod":
		return driver.AlgorithmPollardPm1PowMod, nil
	case "pm1-ref":
		return driver.AlgorithmPollardPm1Reference, nil
	case "pplus1":
		return driver.AlgorithmWilliamsPPlus1, nil
	default:
		return driver.AlgorithmAuto, fmt.Errorf("unknown algorithm %q", name)
	}
}
