// Package testutil provides the shared platform fixture the builder,
// analysis, and printing tests run against.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmibrah2/OpenQL/internal/ir"
	"github.com/mmibrah2/OpenQL/internal/platform"
)

// NewPlatform builds the standard test platform: int32/bit/qubit/real types,
// a five-qubit main register "q", a five-element integer register "c", a
// scalar "flag" bit, a small gate set, and the integer/bit operator functions.
//
// The "rx" gate carries angle specializations for 90 and 45 so resolution and
// specialization paths are exercisable out of the box.
func NewPlatform(t testing.TB) *platform.Platform {
	t.Helper()
	p := platform.New()

	intType, err := p.AddDataType(&ir.IntType{Name: "int32", Signed: true, Bits: 32})
	require.NoError(t, err)
	bitType, err := p.AddDataType(&ir.BitType{Name: "bit"})
	require.NoError(t, err)
	qubitType, err := p.AddDataType(&ir.QubitType{Name: "qubit"})
	require.NoError(t, err)
	realType, err := p.AddDataType(&ir.RealType{Name: "real"})
	require.NoError(t, err)

	_, err = p.AddPhysicalObject(&ir.Object{Name: "q", Type: qubitType, Shape: []uint64{5}})
	require.NoError(t, err)
	_, err = p.AddPhysicalObject(&ir.Object{Name: "c", Type: intType, Shape: []uint64{5}})
	require.NoError(t, err)
	_, err = p.AddPhysicalObject(&ir.Object{Name: "flag", Type: bitType})
	require.NoError(t, err)

	gates := []*ir.InstructionType{
		{Name: "x", Operands: []ir.OperandType{{Mode: ir.ModeCommuteX, Type: qubitType}}, Quantum: true, Duration: 1},
		{Name: "y", Operands: []ir.OperandType{{Mode: ir.ModeCommuteY, Type: qubitType}}, Quantum: true, Duration: 1},
		{Name: "z", Operands: []ir.OperandType{{Mode: ir.ModeCommuteZ, Type: qubitType}}, Quantum: true, Duration: 1},
		{Name: "rz", Operands: []ir.OperandType{
			{Mode: ir.ModeCommuteZ, Type: qubitType},
			{Mode: ir.ModeRead, Type: realType},
		}, Quantum: true, Duration: 2},
		{Name: "cz", Operands: []ir.OperandType{
			{Mode: ir.ModeCommuteZ, Type: qubitType},
			{Mode: ir.ModeCommuteZ, Type: qubitType},
		}, Quantum: true, Duration: 3},
		{Name: "cnot", Operands: []ir.OperandType{
			{Mode: ir.ModeCommuteZ, Type: qubitType},
			{Mode: ir.ModeCommuteX, Type: qubitType},
		}, Quantum: true, Duration: 4},
		{Name: "measure", Operands: []ir.OperandType{{Mode: ir.ModeMeasure, Type: qubitType}}, Quantum: true, Duration: 10},
	}
	for _, g := range gates {
		_, err = p.AddInstructionType(g)
		require.NoError(t, err)
	}

	rx := func() *ir.InstructionType {
		return &ir.InstructionType{
			Name:     "rx",
			Operands: []ir.OperandType{{Mode: ir.ModeCommuteX, Type: qubitType}},
			Quantum:  true,
			Duration: 2,
		}
	}
	_, err = p.AddInstructionType(rx())
	require.NoError(t, err)
	_, err = p.AddInstructionType(rx(), &ir.RealLiteral{Value: 90, Type: realType})
	require.NoError(t, err)
	_, err = p.AddInstructionType(rx(), &ir.RealLiteral{Value: 45, Type: realType})
	require.NoError(t, err)

	binInt := []ir.OperandType{{Mode: ir.ModeRead, Type: intType}, {Mode: ir.ModeRead, Type: intType}}
	functions := []*ir.FunctionType{
		{Name: "operator+", Operands: binInt, ReturnType: intType},
		{Name: "operator-", Operands: binInt, ReturnType: intType},
		{Name: "operator*", Operands: binInt, ReturnType: intType},
		{Name: "operator-", Operands: []ir.OperandType{{Mode: ir.ModeRead, Type: intType}}, ReturnType: intType},
		{Name: "operator<", Operands: binInt, ReturnType: bitType},
		{Name: "operator==", Operands: binInt, ReturnType: bitType},
		{Name: "operator!", Operands: []ir.OperandType{{Mode: ir.ModeRead, Type: bitType}}, ReturnType: bitType},
		{Name: "operator?:", Operands: []ir.OperandType{
			{Mode: ir.ModeRead, Type: bitType},
			{Mode: ir.ModeRead, Type: intType},
			{Mode: ir.ModeRead, Type: intType},
		}, ReturnType: intType},
		{Name: "min", Operands: binInt, ReturnType: intType},
	}
	for _, f := range functions {
		_, err = p.AddFunctionType(f)
		require.NoError(t, err)
	}

	return p
}
