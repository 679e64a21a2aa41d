// Package quasar simulates quantum circuits by dense state-vector
// evolution: a length-2^n array of complex amplitudes, in-place gate
// kernels, Born-rule measurement, and multi-shot sampling.
//
// Circuits are built fluently and executed by a Simulator:
//
//	circuit := quasar.NewCircuit(2).H(0).CX(0, 1).MeasureAll()
//	counts, err := quasar.NewSimulatorWithSeed(42).Sample(circuit, 1000)
package quasar
