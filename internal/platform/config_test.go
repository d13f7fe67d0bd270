package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmibrah2/OpenQL/internal/ir"
)

const testDescription = `
name: five_qubit_test
types:
  - {name: int32, kind: int, bits: 32, signed: true}
  - {name: bit, kind: bit}
  - {name: qubit, kind: qubit}
  - {name: real, kind: real}
objects:
  - {name: q, type: qubit, shape: [5]}
  - {name: c, type: int32, shape: [5]}
  - {name: flag, type: bit}
main_qubit_register: q
instructions:
  - {name: x, operands: ["X:qubit"], duration: 1, quantum: true}
  - {name: measure, operands: ["M:qubit"], duration: 10, quantum: true}
  - name: rx
    operands: ["X:qubit"]
    duration: 2
    quantum: true
    template_types: [real]
    specializations:
      - [90.0]
      - [45.0]
functions:
  - {name: operator+, operands: ["R:int32", "R:int32"], return: int32}
  - {name: operator<, operands: ["R:int32", "R:int32"], return: bit}
`

func TestNewFromDescription(t *testing.T) {
	p, err := NewFromDescription([]byte(testDescription))
	require.NoError(t, err)

	require.Len(t, p.DataTypes(), 4)
	intType := p.FindDataType("int32")
	require.NotNil(t, intType)
	assert.True(t, intType.(*ir.IntType).Signed)
	assert.Equal(t, 32, intType.(*ir.IntType).Bits)
	qubitType := p.FindDataType("qubit")
	require.NotNil(t, qubitType)

	qID := p.FindPhysicalObject("q")
	require.NotEqual(t, ir.NullObject, qID)
	assert.Equal(t, qID, p.MainQubitRegister)
	assert.Equal(t, uint64(5), p.QubitCount())
	assert.NotEqual(t, ir.NullObject, p.FindPhysicalObject("flag"))

	measure := p.FindInstructionType("measure", []ir.DataType{qubitType}, false)
	require.NotNil(t, measure)
	assert.Equal(t, ir.ModeMeasure, measure.Operands[0].Mode)
	assert.Equal(t, uint64(10), measure.Duration)

	rx := p.FindInstructionType("rx", []ir.DataType{qubitType}, false)
	require.NotNil(t, rx)
	require.Len(t, rx.Specializations, 2)
	realType := p.FindDataType("real")
	assert.True(t, ir.EqualExpressions(
		&ir.RealLiteral{Value: 90, Type: realType},
		rx.Specializations[0].TemplateOperands[0]))

	assert.NotNil(t, p.FindFunctionType("operator+", []ir.DataType{intType, intType}))
	assert.NotNil(t, p.FindFunctionType("operator<", []ir.DataType{intType, intType}))
}

func TestValidateDescriptionRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "types: [1,\n"},
		{"unknown top-level field", "types: []\nextras: true\n"},
		{"unknown type field", "types:\n  - {name: bit, kind: bit, width: 3}\n"},
		{"unknown kind", "types:\n  - {name: f, kind: float}\n"},
		{"int without bits", "types:\n  - {name: i, kind: int}\n"},
		{"bits out of range", "types:\n  - {name: i, kind: int, bits: 128}\n"},
		{"negative duration", "types: []\ninstructions:\n  - {name: x, duration: -1}\n"},
		{"negative shape", "types: []\nobjects:\n  - {name: q, type: qubit, shape: [-1]}\n"},
		{"missing types", "objects: []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDescription([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, IsConfigError(err))
		})
	}
}

func TestNewFromDescriptionRejectsInconsistencies(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			"object of unknown type",
			"types:\n  - {name: bit, kind: bit}\nobjects:\n  - {name: c, type: int32}\n",
		},
		{
			"unknown main register",
			"types:\n  - {name: qubit, kind: qubit}\nmain_qubit_register: q\n",
		},
		{
			"bad operand mode",
			"types:\n  - {name: qubit, kind: qubit}\ninstructions:\n  - {name: x, operands: [\"Q:qubit\"]}\n",
		},
		{
			"operand without mode",
			"types:\n  - {name: qubit, kind: qubit}\ninstructions:\n  - {name: x, operands: [\"qubit\"]}\n",
		},
		{
			"unknown template type",
			"types:\n  - {name: qubit, kind: qubit}\ninstructions:\n  - {name: rx, operands: [\"X:qubit\"], template_types: [real], specializations: [[90.0]]}\n",
		},
		{
			"specialization row longer than template types",
			"types:\n  - {name: qubit, kind: qubit}\n  - {name: real, kind: real}\ninstructions:\n  - {name: rx, operands: [\"X:qubit\"], template_types: [real], specializations: [[90.0, 45.0]]}\n",
		},
		{
			"specialization value of wrong kind",
			"types:\n  - {name: qubit, kind: qubit}\n  - {name: real, kind: real}\ninstructions:\n  - {name: rx, operands: [\"X:qubit\"], template_types: [real], specializations: [[true]]}\n",
		},
		{
			"function with unknown return type",
			"types:\n  - {name: bit, kind: bit}\nfunctions:\n  - {name: f, operands: [], return: int32}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFromDescription([]byte(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestTemplateValuesQubitSlot(t *testing.T) {
	doc := `
types:
  - {name: int32, kind: int, bits: 32, signed: true}
  - {name: qubit, kind: qubit}
objects:
  - {name: q, type: qubit, shape: [5]}
instructions:
  - name: reset
    operands: ["W:qubit"]
    quantum: true
    duration: 1
    template_types: [qubit]
    specializations:
      - [2]
`
	p, err := NewFromDescription([]byte(doc))
	require.NoError(t, err)

	qubitType := p.FindDataType("qubit")
	reset := p.FindInstructionType("reset", []ir.DataType{qubitType}, false)
	require.NotNil(t, reset)
	require.Len(t, reset.Specializations, 1)

	bound := reset.Specializations[0].TemplateOperands[0]
	ref, ok := bound.(*ir.Reference)
	require.True(t, ok)
	assert.Equal(t, p.MainQubitRegister, ref.Object)
	assert.Same(t, qubitType, ref.Type)
	require.Len(t, ref.Indices, 1)
	assert.Equal(t, int64(2), ref.Indices[0].(*ir.IntLiteral).Value)
}

func TestParseDescriptionDecodesStructure(t *testing.T) {
	cfg, err := ParseDescription([]byte(testDescription))
	require.NoError(t, err)
	assert.Equal(t, "five_qubit_test", cfg.Name)
	assert.Len(t, cfg.Types, 4)
	assert.Len(t, cfg.Objects, 3)
	assert.Equal(t, "q", cfg.MainQubitRegister)
	require.Len(t, cfg.Instructions, 3)
	assert.Equal(t, [][]any{{90.0}, {45.0}}, cfg.Instructions[2].Specializations)
	assert.Len(t, cfg.Functions, 2)
}
