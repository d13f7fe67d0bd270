package platform

import (
	"bytes"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/mmibrah2/OpenQL/internal/ir"
)

// configSchema is the CUE schema a platform description must satisfy before
// any registry mutation happens. Definitions are closed, so unknown fields
// are rejected.
const configSchema = `
#Platform: {
	name?: string
	types: [...#Type]
	objects?: [...#Object]
	main_qubit_register?: string
	instructions?: [...#Instruction]
	functions?: [...#Function]
}

#Type: {
	name: string
	kind: "int" | "bit" | "qubit" | "real"
	if kind == "int" {
		bits:    int & >0 & <=64
		signed?: bool
	}
}

#Object: {
	name: string
	type: string
	shape?: [...int & >=0]
}

#Instruction: {
	name: string
	operands?: [...string]
	duration?: int & >=0
	quantum?:  bool
	template_types?: [...string]
	specializations?: [...[...(int | number | bool)]]
}

#Function: {
	name: string
	operands?: [...string]
	return: string
}
`

// Config is the decoded form of a platform description document.
type Config struct {
	Name              string              `yaml:"name"`
	Types             []TypeConfig        `yaml:"types"`
	Objects           []ObjectConfig      `yaml:"objects"`
	MainQubitRegister string              `yaml:"main_qubit_register"`
	Instructions      []InstructionConfig `yaml:"instructions"`
	Functions         []FunctionConfig    `yaml:"functions"`
}

// TypeConfig declares one data type. Bits and Signed apply to "int" only.
type TypeConfig struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Bits   int    `yaml:"bits"`
	Signed bool   `yaml:"signed"`
}

// ObjectConfig declares one physical object.
type ObjectConfig struct {
	Name  string   `yaml:"name"`
	Type  string   `yaml:"type"`
	Shape []uint64 `yaml:"shape"`
}

// InstructionConfig declares one instruction signature. Operands use the
// "<mode>:<type>" prototype spelling, e.g. "X:real" or "W:qubit".
// TemplateTypes names the data types of the constant template operands a
// specialization binds; Specializations lists the bound value rows: ints
// bind integer slots, bools bit slots, numbers real slots, and for a qubit
// slot an int binds a main-register qubit reference.
type InstructionConfig struct {
	Name            string   `yaml:"name"`
	Operands        []string `yaml:"operands"`
	Duration        uint64   `yaml:"duration"`
	Quantum         bool     `yaml:"quantum"`
	TemplateTypes   []string `yaml:"template_types"`
	Specializations [][]any  `yaml:"specializations"`
}

// FunctionConfig declares one function signature.
type FunctionConfig struct {
	Name     string   `yaml:"name"`
	Operands []string `yaml:"operands"`
	Return   string   `yaml:"return"`
}

// ValidateDescription checks a YAML or JSON platform description against the
// embedded CUE schema without building anything.
func ValidateDescription(data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return newConfigError(fmt.Sprintf("platform description is not valid YAML/JSON: %v", err))
	}
	ctx := cuecontext.New()
	schema := ctx.CompileString(configSchema).LookupPath(cue.ParsePath("#Platform"))
	if err := schema.Err(); err != nil {
		return newConfigError(fmt.Sprintf("internal schema error: %v", err))
	}
	doc := ctx.Encode(raw)
	if err := doc.Err(); err != nil {
		return newConfigError(fmt.Sprintf("platform description not encodable: %v", err))
	}
	if err := schema.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return newConfigError(strings.TrimSpace(cueerrors.Details(err, nil)))
	}
	return nil
}

// ParseDescription validates and decodes a platform description document.
func ParseDescription(data []byte) (*Config, error) {
	if err := ValidateDescription(data); err != nil {
		return nil, err
	}
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, newConfigError(fmt.Sprintf("platform description did not decode: %v", err))
	}
	return cfg, nil
}

// NewFromDescription validates, decodes, and builds a platform from a YAML or
// JSON description document.
func NewFromDescription(data []byte) (*Platform, error) {
	cfg, err := ParseDescription(data)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg)
}

// NewFromConfig builds a platform registry from a decoded description. The
// build goes through the public registration operations only, so it cannot
// bypass a registry invariant.
func NewFromConfig(cfg *Config) (*Platform, error) {
	p := New()
	for _, tc := range cfg.Types {
		var typ ir.DataType
		switch tc.Kind {
		case "int":
			typ = &ir.IntType{Name: tc.Name, Signed: tc.Signed, Bits: tc.Bits}
		case "bit":
			typ = &ir.BitType{Name: tc.Name}
		case "qubit":
			typ = &ir.QubitType{Name: tc.Name}
		case "real":
			typ = &ir.RealType{Name: tc.Name}
		default:
			return nil, newConfigError(fmt.Sprintf("unknown type kind %q", tc.Kind))
		}
		if _, err := p.AddDataType(typ); err != nil {
			return nil, err
		}
	}
	for _, oc := range cfg.Objects {
		typ := p.FindDataType(oc.Type)
		if typ == nil {
			return nil, newConfigError(fmt.Sprintf("object %q uses unknown type %q", oc.Name, oc.Type))
		}
		if _, err := p.AddPhysicalObject(&ir.Object{Name: oc.Name, Type: typ, Shape: oc.Shape}); err != nil {
			return nil, err
		}
	}
	if cfg.MainQubitRegister != "" {
		id := p.FindPhysicalObject(cfg.MainQubitRegister)
		if id == ir.NullObject {
			return nil, newConfigError(fmt.Sprintf("main qubit register %q is not a registered object", cfg.MainQubitRegister))
		}
		p.MainQubitRegister = id
	}
	for _, ic := range cfg.Instructions {
		operands, err := p.parsePrototype(ic.Operands)
		if err != nil {
			return nil, newConfigError(fmt.Sprintf("instruction %q: %v", ic.Name, err))
		}
		base := func() *ir.InstructionType {
			return &ir.InstructionType{
				Name:     ic.Name,
				Operands: operands,
				Quantum:  ic.Quantum,
				Duration: ic.Duration,
			}
		}
		if _, err := p.AddInstructionType(base()); err != nil {
			return nil, err
		}
		templateTypes := make([]ir.DataType, len(ic.TemplateTypes))
		for i, name := range ic.TemplateTypes {
			if templateTypes[i] = p.FindDataType(name); templateTypes[i] == nil {
				return nil, newConfigError(fmt.Sprintf("instruction %q: unknown template type %q", ic.Name, name))
			}
		}
		for _, row := range ic.Specializations {
			values, err := p.templateValues(templateTypes, row)
			if err != nil {
				return nil, newConfigError(fmt.Sprintf("instruction %q: %v", ic.Name, err))
			}
			if _, err := p.AddInstructionType(base(), values...); err != nil {
				return nil, err
			}
		}
	}
	for _, fc := range cfg.Functions {
		operands, err := p.parsePrototype(fc.Operands)
		if err != nil {
			return nil, newConfigError(fmt.Sprintf("function %q: %v", fc.Name, err))
		}
		ret := p.FindDataType(fc.Return)
		if ret == nil {
			return nil, newConfigError(fmt.Sprintf("function %q returns unknown type %q", fc.Name, fc.Return))
		}
		if _, err := p.AddFunctionType(&ir.FunctionType{Name: fc.Name, Operands: operands, ReturnType: ret}); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// parsePrototype decodes "<mode>:<type>" operand declarations.
func (p *Platform) parsePrototype(specs []string) ([]ir.OperandType, error) {
	operands := make([]ir.OperandType, 0, len(specs))
	for _, spec := range specs {
		modeStr, typeName, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, fmt.Errorf("operand %q is not of the form mode:type", spec)
		}
		mode, ok := ir.ParseAccessMode(modeStr)
		if !ok {
			return nil, fmt.Errorf("operand %q has unknown access mode %q", spec, modeStr)
		}
		typ := p.FindDataType(typeName)
		if typ == nil {
			return nil, fmt.Errorf("operand %q uses unknown type %q", spec, typeName)
		}
		operands = append(operands, ir.OperandType{Mode: mode, Type: typ})
	}
	return operands, nil
}

// templateValues converts one specialization row into template operand
// expressions typed by the instruction's declared template types.
func (p *Platform) templateValues(templateTypes []ir.DataType, row []any) ([]ir.Expression, error) {
	if len(row) > len(templateTypes) {
		return nil, fmt.Errorf("specialization binds %d values but only %d template types are declared", len(row), len(templateTypes))
	}
	values := make([]ir.Expression, 0, len(row))
	for i, v := range row {
		typ := templateTypes[i]
		switch t := typ.(type) {
		case *ir.IntType:
			n, ok := asInt(v)
			if !ok {
				return nil, fmt.Errorf("specialization value %v does not fit integer slot %d", v, i)
			}
			values = append(values, &ir.IntLiteral{Value: n, Type: typ})
		case *ir.BitType:
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("specialization value %v does not fit bit slot %d", v, i)
			}
			values = append(values, &ir.BitLiteral{Value: b, Type: typ})
		case *ir.RealType:
			switch n := v.(type) {
			case float64:
				values = append(values, &ir.RealLiteral{Value: n, Type: typ})
			case int:
				values = append(values, &ir.RealLiteral{Value: float64(n), Type: typ})
			default:
				return nil, fmt.Errorf("specialization value %v does not fit real slot %d", v, i)
			}
		case *ir.QubitType:
			n, ok := asInt(v)
			if !ok || p.MainQubitRegister == ir.NullObject {
				return nil, fmt.Errorf("specialization value %v does not name a main-register qubit for slot %d", v, i)
			}
			values = append(values, &ir.Reference{
				Object:  p.MainQubitRegister,
				Type:    typ,
				Indices: []ir.Expression{&ir.IntLiteral{Value: n, Type: p.DefaultIntType}},
			})
		default:
			return nil, fmt.Errorf("operand slot %d of type %q cannot be specialized", i, t.TypeName())
		}
	}
	return values, nil
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}
