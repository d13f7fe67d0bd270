package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmibrah2/OpenQL/internal/ir"
	"github.com/mmibrah2/OpenQL/internal/platform"
	"github.com/mmibrah2/OpenQL/internal/testutil"
)

func qubitRef(t *testing.T, p *platform.Platform, index uint64) *ir.Reference {
	t.Helper()
	ref, err := MakeQubitRef(p, index)
	require.NoError(t, err)
	return ref
}

func intRef(t *testing.T, p *platform.Platform, index uint64) *ir.Reference {
	t.Helper()
	ref, err := MakeReference(p, p.FindPhysicalObject("c"), index)
	require.NoError(t, err)
	return ref
}

func angle(p *platform.Platform, value float64) *ir.RealLiteral {
	return &ir.RealLiteral{Value: value, Type: p.FindDataType("real")}
}

func TestMakeSetInstruction(t *testing.T) {
	p := testutil.NewPlatform(t)
	intType := p.FindDataType("int32")

	lhs := intRef(t, p, 0)
	rhs := &ir.IntLiteral{Value: 7, Type: intType}

	insn, err := MakeSetInstruction(p, lhs, rhs, nil)
	require.NoError(t, err)
	assert.Same(t, lhs, insn.LHS)
	assert.Same(t, rhs, insn.RHS)
	assert.True(t, ir.IsTrueLiteral(insn.Condition))

	// The reserved name routes through MakeInstruction as well.
	viaName, err := MakeInstruction(p, "set", []ir.Expression{intRef(t, p, 1), rhs}, nil, false, false)
	require.NoError(t, err)
	require.IsType(t, &ir.SetInstruction{}, viaName)

	_, err = MakeInstruction(p, "set", []ir.Expression{lhs}, nil, false, false)
	assert.True(t, IsTypeMismatchError(err))
}

func TestMakeSetInstructionRejectsBadOperands(t *testing.T) {
	p := testutil.NewPlatform(t)
	intType := p.FindDataType("int32")
	seven := &ir.IntLiteral{Value: 7, Type: intType}

	tests := []struct {
		name     string
		lhs, rhs ir.Expression
	}{
		{"literal LHS", seven, seven},
		{"qubit LHS", qubitRef(t, p, 0), seven},
		{"type mismatch", intRef(t, p, 0), &ir.BitLiteral{Value: true, Type: p.DefaultBitType}},
		{"untyped RHS", intRef(t, p, 0), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MakeSetInstruction(p, tt.lhs, tt.rhs, nil)
			require.Error(t, err)
			assert.True(t, IsTypeMismatchError(err))
		})
	}
}

func TestMakeInstructionWait(t *testing.T) {
	p := testutil.NewPlatform(t)
	dur := func(v int64) *ir.IntLiteral { return &ir.IntLiteral{Value: v, Type: p.DefaultIntType} }

	insn, err := MakeInstruction(p, "wait", []ir.Expression{dur(3), qubitRef(t, p, 0), qubitRef(t, p, 1)}, nil, false, false)
	require.NoError(t, err)
	wait := insn.(*ir.WaitInstruction)
	assert.Equal(t, uint64(3), wait.Duration)
	assert.Len(t, wait.Objects, 2)
	assert.False(t, wait.IsBarrier())

	// Duration only: a timed full barrier on everything.
	insn, err = MakeInstruction(p, "wait", []ir.Expression{dur(5)}, nil, false, false)
	require.NoError(t, err)
	assert.Empty(t, insn.(*ir.WaitInstruction).Objects)

	_, err = MakeInstruction(p, "wait", nil, nil, false, false)
	assert.True(t, IsTypeMismatchError(err))
	_, err = MakeInstruction(p, "wait", []ir.Expression{dur(-1)}, nil, false, false)
	assert.True(t, IsTypeMismatchError(err))
	_, err = MakeInstruction(p, "wait", []ir.Expression{angle(p, 1)}, nil, false, false)
	assert.True(t, IsTypeMismatchError(err))
	_, err = MakeInstruction(p, "wait", []ir.Expression{dur(1), dur(2)}, nil, false, false)
	assert.True(t, IsTypeMismatchError(err))

	// Wait is always unconditional, even for a literal true condition.
	cond := &ir.BitLiteral{Value: true, Type: p.DefaultBitType}
	_, err = MakeInstruction(p, "wait", []ir.Expression{dur(1)}, cond, false, false)
	assert.True(t, IsInvalidConditionError(err))
}

func TestMakeInstructionBarrier(t *testing.T) {
	p := testutil.NewPlatform(t)

	insn, err := MakeInstruction(p, "barrier", nil, nil, false, false)
	require.NoError(t, err)
	wait := insn.(*ir.WaitInstruction)
	assert.True(t, wait.IsBarrier())
	assert.Empty(t, wait.Objects)

	insn, err = MakeInstruction(p, "barrier", []ir.Expression{qubitRef(t, p, 2)}, nil, false, false)
	require.NoError(t, err)
	assert.Len(t, insn.(*ir.WaitInstruction).Objects, 1)

	cond := &ir.BitLiteral{Value: true, Type: p.DefaultBitType}
	_, err = MakeInstruction(p, "barrier", nil, cond, false, false)
	assert.True(t, IsInvalidConditionError(err))
}

func TestMakeInstructionCustom(t *testing.T) {
	p := testutil.NewPlatform(t)

	insn, err := MakeInstruction(p, "cnot", []ir.Expression{qubitRef(t, p, 0), qubitRef(t, p, 1)}, nil, false, false)
	require.NoError(t, err)
	custom := insn.(*ir.CustomInstruction)
	assert.Equal(t, "cnot", custom.Type.Name)
	assert.Len(t, custom.Operands, 2)
	assert.True(t, ir.IsTrueLiteral(custom.Condition))

	// A supplied condition is kept as-is.
	flagRef, err := MakeReference(p, p.FindPhysicalObject("flag"))
	require.NoError(t, err)
	insn, err = MakeInstruction(p, "x", []ir.Expression{qubitRef(t, p, 0)}, flagRef, false, false)
	require.NoError(t, err)
	assert.Same(t, ir.Expression(flagRef), insn.(*ir.CustomInstruction).Condition)
}

func TestMakeInstructionChecksOperandModes(t *testing.T) {
	p := testutil.NewPlatform(t)

	// A literal cannot occupy the commute-mode qubit slot.
	_, err := MakeInstruction(p, "x", []ir.Expression{angle(p, 1)}, nil, false, false)
	require.Error(t, err)

	// rz's second slot is read mode, so a literal angle is fine.
	insn, err := MakeInstruction(p, "rz", []ir.Expression{qubitRef(t, p, 0), angle(p, 30)}, nil, false, false)
	require.NoError(t, err)
	assert.Equal(t, "rz", insn.(*ir.CustomInstruction).Type.Name)
}

func TestMakeInstructionResolvesSpecialization(t *testing.T) {
	p := testutil.NewPlatform(t)

	insn, err := MakeInstruction(p, "rx", []ir.Expression{angle(p, 90), qubitRef(t, p, 0)}, nil, false, false)
	require.NoError(t, err)
	custom := insn.(*ir.CustomInstruction)

	// The leading constant bound as a template operand; the explicit
	// operand list holds only the qubit.
	require.Len(t, custom.Type.TemplateOperands, 1)
	assert.True(t, ir.EqualExpressions(angle(p, 90), custom.Type.TemplateOperands[0]))
	require.Len(t, custom.Operands, 1)
	assert.Equal(t, len(custom.Type.Operands), len(custom.Operands))

	// An angle without a registered specialization cannot resolve.
	_, err = MakeInstruction(p, "rx", []ir.Expression{angle(p, 30), qubitRef(t, p, 0)}, nil, false, false)
	assert.True(t, IsUnresolvedInstructionError(err))
	insn, err = MakeInstruction(p, "rx", []ir.Expression{angle(p, 30), qubitRef(t, p, 0)}, nil, true, false)
	require.NoError(t, err)
	assert.Nil(t, insn)
}

func TestMakeInstructionUnresolved(t *testing.T) {
	p := testutil.NewPlatform(t)

	_, err := MakeInstruction(p, "ry", []ir.Expression{qubitRef(t, p, 0)}, nil, false, false)
	assert.True(t, IsUnresolvedInstructionError(err))

	insn, err := MakeInstruction(p, "ry", []ir.Expression{qubitRef(t, p, 0)}, nil, true, false)
	require.NoError(t, err)
	assert.Nil(t, insn)
}

func TestMakeInstructionGeneratesOverload(t *testing.T) {
	p := testutil.NewPlatform(t)
	qubitType := p.FindDataType("qubit")

	// No two-qubit x exists; the overload shim synthesizes one.
	insn, err := MakeInstruction(p, "x", []ir.Expression{qubitRef(t, p, 0), qubitRef(t, p, 1)}, nil, false, true)
	require.NoError(t, err)
	custom := insn.(*ir.CustomInstruction)
	require.Len(t, custom.Type.Operands, 2)
	assert.Equal(t, ir.ModeWrite, custom.Type.Operands[0].Mode)

	// The synthesized signature is now registered.
	assert.NotNil(t, p.FindInstructionType("x", []ir.DataType{qubitType, qubitType}, false))
}

func TestMakeInstructionPrefersSpecializationOverOverload(t *testing.T) {
	p := testutil.NewPlatform(t)
	qubitType := p.FindDataType("qubit")
	realType := p.FindDataType("real")

	// The overload shim must not fire while constant stripping can still
	// reach a registered specialization.
	insn, err := MakeInstruction(p, "rx", []ir.Expression{angle(p, 90), qubitRef(t, p, 0)}, nil, false, true)
	require.NoError(t, err)
	custom := insn.(*ir.CustomInstruction)
	require.Len(t, custom.Type.TemplateOperands, 1)
	assert.True(t, ir.EqualExpressions(angle(p, 90), custom.Type.TemplateOperands[0]))
	require.Len(t, custom.Operands, 1)

	// No rx(real, qubit) signature leaked into the registry as a side
	// effect of the lookup.
	assert.Nil(t, p.FindInstructionType("rx", []ir.DataType{realType, qubitType}, false))
}

func TestSpecializeGeneralizeRoundTrip(t *testing.T) {
	p := testutil.NewPlatform(t)

	insn, err := MakeInstruction(p, "rx", []ir.Expression{angle(p, 45), qubitRef(t, p, 2)}, nil, false, false)
	require.NoError(t, err)
	custom := insn.(*ir.CustomInstruction)
	specialized := custom.Type

	GeneralizeInstruction(custom)
	assert.Nil(t, custom.Type.Generalization)
	require.Len(t, custom.Operands, 2)
	assert.True(t, ir.EqualExpressions(angle(p, 45), custom.Operands[0]))
	assert.Empty(t, custom.Type.TemplateOperands)

	SpecializeInstruction(custom)
	assert.Same(t, specialized, custom.Type)
	require.Len(t, custom.Operands, 1)

	// Both are no-ops on non-custom instructions.
	wait := &ir.WaitInstruction{Duration: 1}
	GeneralizeInstruction(wait)
	SpecializeInstruction(wait)
}

func TestGetGeneralization(t *testing.T) {
	p := testutil.NewPlatform(t)
	qubitType := p.FindDataType("qubit")

	root := p.FindInstructionType("rx", []ir.DataType{qubitType}, false)
	require.NotNil(t, root)
	require.NotEmpty(t, root.Specializations)

	assert.Same(t, root, GetGeneralization(root))
	assert.Same(t, root, GetGeneralization(root.Specializations[0]))
}

func TestGetOperands(t *testing.T) {
	p := testutil.NewPlatform(t)

	insn, err := MakeInstruction(p, "rx", []ir.Expression{angle(p, 90), qubitRef(t, p, 3)}, nil, false, false)
	require.NoError(t, err)

	// The uniform view leads with the bound template operand.
	operands := GetOperands(insn)
	require.Len(t, operands, 2)
	assert.True(t, ir.EqualExpressions(angle(p, 90), operands[0]))
	assert.True(t, ir.EqualExpressions(qubitRef(t, p, 3), operands[1]))

	set, err := MakeSetInstruction(p, intRef(t, p, 0), &ir.IntLiteral{Value: 1, Type: p.DefaultIntType}, nil)
	require.NoError(t, err)
	require.Len(t, GetOperands(set), 2)

	assert.Nil(t, GetOperands(&ir.WaitInstruction{}))
}

func TestMakeFunctionCall(t *testing.T) {
	p := testutil.NewPlatform(t)
	one := &ir.IntLiteral{Value: 1, Type: p.DefaultIntType}

	call, err := MakeFunctionCall(p, "operator+", []ir.Expression{intRef(t, p, 0), one})
	require.NoError(t, err)
	assert.Equal(t, "operator+", call.Function.Name)
	assert.Same(t, p.FindDataType("int32"), ir.TypeOf(call))

	_, err = MakeFunctionCall(p, "operator+", []ir.Expression{one})
	assert.True(t, IsUnresolvedFunctionError(err))
	_, err = MakeFunctionCall(p, "max", []ir.Expression{one, one})
	assert.True(t, IsUnresolvedFunctionError(err))
}

func TestInstructionDuration(t *testing.T) {
	p := testutil.NewPlatform(t)

	measure, err := MakeInstruction(p, "measure", []ir.Expression{qubitRef(t, p, 0)}, nil, false, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), InstructionDuration(measure))

	set, err := MakeSetInstruction(p, intRef(t, p, 0), &ir.IntLiteral{Value: 1, Type: p.DefaultIntType}, nil)
	require.NoError(t, err)
	assert.Zero(t, InstructionDuration(set))

	assert.Equal(t, uint64(4), InstructionDuration(&ir.WaitInstruction{Duration: 4}))
}

func TestBlockDuration(t *testing.T) {
	p := testutil.NewPlatform(t)

	x, err := MakeInstruction(p, "x", []ir.Expression{qubitRef(t, p, 0)}, nil, false, false)
	require.NoError(t, err)
	measure, err := MakeInstruction(p, "measure", []ir.Expression{qubitRef(t, p, 1)}, nil, false, false)
	require.NoError(t, err)
	x.(*ir.CustomInstruction).Cycle = 0
	measure.(*ir.CustomInstruction).Cycle = 2

	block := &ir.Block{Statements: []ir.Statement{
		x,
		measure,
		&ir.BreakStatement{}, // structured statements occupy no cycles
	}}
	assert.Equal(t, uint64(12), BlockDuration(block))

	assert.Zero(t, BlockDuration(&ir.Block{}))
	assert.Zero(t, BlockDuration(&ir.Block{Statements: []ir.Statement{&ir.ContinueStatement{}}}))
}

func TestQubitsInvolved(t *testing.T) {
	p := testutil.NewPlatform(t)

	cnot, err := MakeInstruction(p, "cnot", []ir.Expression{qubitRef(t, p, 0), qubitRef(t, p, 1)}, nil, false, false)
	require.NoError(t, err)
	assert.Equal(t, 2, QubitsInvolved(cnot))

	rz, err := MakeInstruction(p, "rz", []ir.Expression{qubitRef(t, p, 0), angle(p, 30)}, nil, false, false)
	require.NoError(t, err)
	assert.Equal(t, 1, QubitsInvolved(rz))

	set, err := MakeSetInstruction(p, intRef(t, p, 0), &ir.IntLiteral{Value: 1, Type: p.DefaultIntType}, nil)
	require.NoError(t, err)
	assert.Zero(t, QubitsInvolved(set))

	wait, err := MakeInstruction(p, "wait", []ir.Expression{
		&ir.IntLiteral{Value: 1, Type: p.DefaultIntType},
		qubitRef(t, p, 0),
		intRef(t, p, 0),
	}, nil, false, false)
	require.NoError(t, err)
	assert.Equal(t, 1, QubitsInvolved(wait))
}
