package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/pdaxt/quasar"
)

func main() {
	var (
		runFile = flag.String("run", "", "execute a QASM file headlessly and print the histogram")
		shots   = flag.Int("shots", 1024, "number of measurement shots")
		seed    = flag.Uint64("seed", 0, "random seed (0 uses the built-in default)")
		qubits  = flag.Int("qubits", 4, "initial register size for the editor")
	)
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	if *runFile != "" {
		runHeadless(logger, *runFile, *shots, *seed)
		return
	}

	if *qubits < 1 || *qubits > quasar.MaxQubits {
		logger.Fatal("qubit count out of range", "qubits", *qubits, "max", quasar.MaxQubits)
	}

	m := initialModel(*qubits, *shots, *seed, *seed != 0, nil)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logger.Fatal("TUI failed", "err", err)
	}
}

// runHeadless parses a QASM file, samples it, and prints the sorted
// histogram to stdout.
func runHeadless(logger *log.Logger, file string, shots int, seed uint64) {
	src, err := os.ReadFile(file)
	if err != nil {
		logger.Fatal("read failed", "file", file, "err", err)
	}

	circuit, err := quasar.ParseQASM(string(src))
	if err != nil {
		logger.Fatal("parse failed", "file", file, "err", err)
	}

	// A circuit without measurements samples as all-zero bitstrings;
	// measure everything instead.
	hasMeasure := false
	for _, inst := range circuit.Instructions() {
		if inst.Gate.Type == quasar.GateMeasure {
			hasMeasure = true
			break
		}
	}
	if !hasMeasure {
		logger.Info("no measurements in circuit, measuring all qubits")
		circuit.MeasureAll()
	}

	sim := quasar.NewSimulator()
	if seed != 0 {
		sim = quasar.NewSimulatorWithSeed(seed)
	}

	logger.Info("sampling", "qubits", circuit.NumQubits(), "gates", circuit.Len(), "depth", circuit.Depth(), "shots", shots)
	counts, err := sim.Sample(circuit, shots)
	if err != nil {
		logger.Fatal("simulation failed", "err", err)
	}

	bitstrings := make([]string, 0, len(counts))
	for bits := range counts {
		bitstrings = append(bitstrings, bits)
	}
	sort.Slice(bitstrings, func(a, b int) bool {
		if counts[bitstrings[a]] != counts[bitstrings[b]] {
			return counts[bitstrings[a]] > counts[bitstrings[b]]
		}
		return bitstrings[a] < bitstrings[b]
	})

	for _, bits := range bitstrings {
		count := counts[bits]
		fmt.Printf("%s  %6d  %.4f\n", bits, count, float64(count)/float64(shots))
	}
}
