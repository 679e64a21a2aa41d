package quasar

import (
	"math"
	"strings"
	"testing"
)

func TestParseQASMBell(t *testing.T) {
	src := `OPENQASM 2.0;
include "qelib1.inc";

qreg q[2];
creg c[2];

h q[0];
cx q[0], q[1];
measure q[0] -> c[0];
measure q[1] -> c[1];
`
	c, err := ParseQASM(src)
	if err != nil {
		t.Fatalf("ParseQASM failed: %v", err)
	}
	if c.NumQubits() != 2 || c.NumClbits() != 2 {
		t.Errorf("got %d qubits, %d clbits, want 2, 2", c.NumQubits(), c.NumClbits())
	}
	if c.Len() != 4 {
		t.Fatalf("got %d instructions, want 4", c.Len())
	}

	insts := c.Instructions()
	if insts[0].Gate.Type != GateH || insts[0].Qubits[0] != 0 {
		t.Errorf("instruction 0: got %s on %v, want H on [0]", insts[0].Gate.Type, insts[0].Qubits)
	}
	if insts[1].Gate.Type != GateCX || insts[1].Qubits[0] != 0 || insts[1].Qubits[1] != 1 {
		t.Errorf("instruction 1: got %s on %v, want CX on [0 1]", insts[1].Gate.Type, insts[1].Qubits)
	}
	if insts[2].Gate.Type != GateMeasure || insts[2].Clbits[0] != 0 {
		t.Errorf("instruction 2: got %s -> %v, want Measure -> [0]", insts[2].Gate.Type, insts[2].Clbits)
	}
}

func TestParseQASMParamGates(t *testing.T) {
	src := `qreg q[2];
rx(pi/2) q[0];
rz(-pi/4) q[1];
u(pi/2, 0, pi) q[0];
cp(pi) q[0], q[1];
`
	c, err := ParseQASM(src)
	if err != nil {
		t.Fatalf("ParseQASM failed: %v", err)
	}
	insts := c.Instructions()
	if len(insts) != 4 {
		t.Fatalf("got %d instructions, want 4", len(insts))
	}

	if got := insts[0].Gate.Params[0]; math.Abs(got-math.Pi/2) > Epsilon {
		t.Errorf("rx angle = %v, want pi/2", got)
	}
	if got := insts[1].Gate.Params[0]; math.Abs(got+math.Pi/4) > Epsilon {
		t.Errorf("rz angle = %v, want -pi/4", got)
	}
	if got := insts[2].Gate.Params; len(got) != 3 || math.Abs(got[2]-math.Pi) > Epsilon {
		t.Errorf("u params = %v, want [pi/2 0 pi]", got)
	}
	if insts[3].Gate.Type != GateCP {
		t.Errorf("instruction 3: got %s, want CP", insts[3].Gate.Type)
	}
}

func TestParseQASMAliases(t *testing.T) {
	src := `qreg q[3];
i q[0];
u1(pi/2) q[0];
cu1(pi/4) q[0], q[1];
toffoli q[0], q[1], q[2];
`
	c, err := ParseQASM(src)
	if err != nil {
		t.Fatalf("ParseQASM failed: %v", err)
	}
	want := []GateType{GateI, GateP, GateCP, GateCCX}
	for i, inst := range c.Instructions() {
		if inst.Gate.Type != want[i] {
			t.Errorf("instruction %d: got %s, want %s", i, inst.Gate.Type, want[i])
		}
	}
}

func TestParseQASMThreeQubit(t *testing.T) {
	src := `qreg q[3];
ccx q[0], q[1], q[2];
cswap q[2], q[0], q[1];
`
	c, err := ParseQASM(src)
	if err != nil {
		t.Fatalf("ParseQASM failed: %v", err)
	}
	insts := c.Instructions()
	if insts[0].Gate.Type != GateCCX {
		t.Errorf("instruction 0: got %s, want CCX", insts[0].Gate.Type)
	}
	if insts[1].Gate.Type != GateCSwap || insts[1].Qubits[0] != 2 {
		t.Errorf("instruction 1: got %s on %v, want CSwap on [2 0 1]", insts[1].Gate.Type, insts[1].Qubits)
	}
}

func TestParseQASMMeasureGrowsCreg(t *testing.T) {
	src := `qreg q[1];
measure q[0] -> c[4];
`
	c, err := ParseQASM(src)
	if err != nil {
		t.Fatalf("ParseQASM failed: %v", err)
	}
	if c.NumClbits() != 5 {
		t.Errorf("got %d clbits, want 5", c.NumClbits())
	}
}

func TestParseQASMRejectsUnknownStatement(t *testing.T) {
	bad := []string{
		"qreg q[2];\nif (c == 1) x q[0];",
		"qreg q[2];\nfrobnicate q[0];",
		"qreg q[2];\nrx(nonsense) q[0];",
		"qreg q[2];\nccx q[0], q[1];",
	}
	for _, src := range bad {
		if _, err := ParseQASM(src); err == nil {
			t.Errorf("ParseQASM accepted %q, want error", src)
		}
	}
}

func TestQASMRoundTrip(t *testing.T) {
	orig := NewCircuit(3).
		H(0).
		Rx(math.Pi/2, 1).
		U(math.Pi/2, 0, math.Pi, 2).
		CX(0, 1).
		CP(math.Pi/4, 1, 2).
		Swap(0, 2).
		CCX(0, 1, 2).
		BarrierAll().
		Reset(1).
		MeasureAll()

	parsed, err := ParseQASM(orig.ToQASM())
	if err != nil {
		t.Fatalf("ParseQASM failed on emitted QASM: %v", err)
	}
	if parsed.NumQubits() != orig.NumQubits() {
		t.Fatalf("got %d qubits, want %d", parsed.NumQubits(), orig.NumQubits())
	}
	if parsed.Len() != orig.Len() {
		t.Fatalf("got %d instructions, want %d", parsed.Len(), orig.Len())
	}
	for i, inst := range parsed.Instructions() {
		want := orig.Instructions()[i]
		if inst.Gate.Type != want.Gate.Type {
			t.Errorf("instruction %d: got %s, want %s", i, inst.Gate.Type, want.Gate.Type)
			continue
		}
		for j, p := range inst.Gate.Params {
			if math.Abs(p-want.Gate.Params[j]) > Epsilon {
				t.Errorf("instruction %d param %d: got %v, want %v", i, j, p, want.Gate.Params[j])
			}
		}
	}

	// States must agree, not just listings.
	a, err := NewSimulator().Run(orig)
	if err != nil {
		t.Fatalf("run original: %v", err)
	}
	b, err := NewSimulator().Run(parsed)
	if err != nil {
		t.Fatalf("run parsed: %v", err)
	}
	if !a.Equal(b) {
		t.Error("round-tripped circuit produces a different state")
	}
}

func TestToQASMHeader(t *testing.T) {
	out := NewCircuit(2).H(0).ToQASM()
	for _, want := range []string{"OPENQASM 2.0;", `include "qelib1.inc";`, "qreg q[2];", "h q[0];"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestParseParamExpr(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1.5707", 1.5707, true},
		{"-0.5", -0.5, true},
		{"3.14e-2", 0.0314, true},
		{"pi", math.Pi, true},
		{"PI", math.Pi, true},
		{"pi/2", math.Pi / 2, true},
		{"-pi/4", -math.Pi / 4, true},
		{"2*pi", 2 * math.Pi, true},
		{"2pi", 2 * math.Pi, true},
		{"3*pi/4", 3 * math.Pi / 4, true},
		{"", 0, false},
		{"tau", 0, false},
		{"pi/0", 0, false},
	}
	for _, tc := range tests {
		got, ok := ParseParamExpr(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseParamExpr(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && math.Abs(got-tc.want) > Epsilon {
			t.Errorf("ParseParamExpr(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFormatParam(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{math.Pi, "pi"},
		{-math.Pi / 2, "-pi/2"},
		{3 * math.Pi / 4, "3*pi/4"},
		{0.5, "0.5"},
	}
	for _, tc := range tests {
		if got := FormatParam(tc.in); got != tc.want {
			t.Errorf("FormatParam(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
