package model

// Opcode is an opaque instruction opcode. The core treats instruction
// bodies as opaque except for their length and the coarse category used by
// the bytecode-sequence similarity feature, so this is a small closed set
// rather than a full instruction encoding.
type Opcode uint8

// OpcodeCategory buckets opcodes into the coarse groups the bytecode-sequence
// (longest-common-subsequence) feature compares, since exact opcode
// identity is too brittle across obfuscated builds but the category of an
// operation (load a value, invoke a method, branch) tends to survive.
type OpcodeCategory uint8

const (
	CategoryOther OpcodeCategory = iota
	CategoryLoad
	CategoryStore
	CategoryInvoke
	CategoryField
	CategoryBranch
	CategoryArith
)

const (
	OpNop Opcode = iota
	OpLoadLocal
	OpLoadConst
	OpStoreLocal
	OpInvokeVirtual
	OpInvokeStatic
	OpInvokeSpecial
	OpInvokeInterface
	OpGetField
	OpPutField
	OpGetStatic
	OpPutStatic
	OpBranch
	OpReturn
	OpArith
	OpOther
)

// Category classifies an opcode into one of the coarse buckets used by
// bytecode-sequence comparison.
func (op Opcode) Category() OpcodeCategory {
	switch op {
	case OpLoadLocal, OpLoadConst:
		return CategoryLoad
	case OpStoreLocal:
		return CategoryStore
	case OpInvokeVirtual, OpInvokeStatic, OpInvokeSpecial, OpInvokeInterface:
		return CategoryInvoke
	case OpGetField, OpPutField, OpGetStatic, OpPutStatic:
		return CategoryField
	case OpBranch:
		return CategoryBranch
	case OpArith:
		return CategoryArith
	default:
		return CategoryOther
	}
}

// Instruction is one opaque element of a method body.
type Instruction struct {
	Op Opcode
}

var opcodeNames = map[string]Opcode{
	"nop":             OpNop,
	"load_local":      OpLoadLocal,
	"load_const":      OpLoadConst,
	"store_local":     OpStoreLocal,
	"invoke_virtual":  OpInvokeVirtual,
	"invoke_static":   OpInvokeStatic,
	"invoke_special":  OpInvokeSpecial,
	"invoke_interface": OpInvokeInterface,
	"get_field":       OpGetField,
	"put_field":       OpPutField,
	"get_static":      OpGetStatic,
	"put_static":      OpPutStatic,
	"branch":          OpBranch,
	"return":          OpReturn,
	"arith":           OpArith,
	"other":           OpOther,
}

// ParseOpcode resolves the mnemonic an assembler reads from a wire format
// into an Opcode, falling back to OpOther for anything unrecognized so an
// unfamiliar mnemonic degrades the bytecode-sequence feature instead of
// failing assembly outright.
func ParseOpcode(name string) Opcode {
	if op, ok := opcodeNames[name]; ok {
		return op
	}
	return OpOther
}
