// Package builtins defines the WGSL math builtins as they appear in the
// intermediate representation of a math call.
//
// The code generator only ever asks for a polyfill by MathFunction, but the
// command line and the public API accept WGSL names, so the table maps in
// both directions.
package builtins

// MathFunction identifies a math builtin.
type MathFunction uint8

const (
	// Comparison
	MathAbs MathFunction = iota
	MathMin
	MathMax
	MathClamp
	MathSaturate

	// Trigonometry
	MathCos
	MathCosh
	MathSin
	MathSinh
	MathTan
	MathTanh
	MathAcos
	MathAsin
	MathAtan
	MathAtan2
	MathAsinh
	MathAcosh
	MathAtanh
	MathRadians
	MathDegrees

	// Decomposition
	MathCeil
	MathFloor
	MathRound
	MathFract
	MathTrunc
	MathModf
	MathFrexp
	MathLdexp

	// Exponent
	MathExp
	MathExp2
	MathLog
	MathLog2
	MathPow

	// Geometry
	MathDot
	MathOuter
	MathCross
	MathDistance
	MathLength
	MathNormalize
	MathFaceForward
	MathReflect
	MathRefract

	// Computational
	MathSign
	MathFma
	MathMix
	MathStep
	MathSmoothStep
	MathSqrt
	MathInverseSqrt
	MathInverse
	MathTranspose
	MathDeterminant
	MathQuantizeF16

	// Bits
	MathCountTrailingZeros
	MathCountLeadingZeros
	MathCountOneBits
	MathReverseBits
	MathExtractBits
	MathInsertBits
	MathFirstTrailingBit
	MathFirstLeadingBit

	// Data packing
	MathPack4x8snorm
	MathPack4x8unorm
	MathPack2x16snorm
	MathPack2x16unorm
	MathPack2x16float
	MathPack4xI8
	MathPack4xU8
	MathPack4xI8Clamp
	MathPack4xU8Clamp

	// Data unpacking
	MathUnpack4x8snorm
	MathUnpack4x8unorm
	MathUnpack2x16snorm
	MathUnpack2x16unorm
	MathUnpack2x16float
	MathUnpack4xI8
	MathUnpack4xU8

	numMathFunctions
)

// Category groups math builtins the way the WGSL builtin chapter does.
type Category uint8

const (
	CategoryNumeric Category = iota
	CategoryGeometric
	CategoryMatrix
	CategoryBits
	CategoryPacking
)

func (c Category) String() string {
	switch c {
	case CategoryNumeric:
		return "numeric"
	case CategoryGeometric:
		return "geometric"
	case CategoryMatrix:
		return "matrix"
	case CategoryBits:
		return "bits"
	case CategoryPacking:
		return "packing"
	default:
		return "unknown"
	}
}

// Builtin describes one math builtin.
type Builtin struct {
	Function MathFunction
	Name     string // WGSL spelling
	Category Category
	// Native is false for builtins the WGSL language does not define and a
	// backend has to emit as a helper function.
	Native bool
}

// table is indexed by MathFunction.
var table [numMathFunctions]Builtin

// byName maps WGSL names to their builtin.
var byName = make(map[string]*Builtin, numMathFunctions)

func init() {
	registerNumeric()
	registerGeometric()
	registerMatrix()
	registerBits()
	registerPacking()
}

// register adds a builtin to the table.
func register(fn MathFunction, name string, category Category, native bool) {
	table[fn] = Builtin{Function: fn, Name: name, Category: category, Native: native}
	byName[name] = &table[fn]
}

// Lookup returns the math builtin with the given WGSL name.
func Lookup(name string) (MathFunction, bool) {
	b := byName[name]
	if b == nil {
		return 0, false
	}
	return b.Function, true
}

// Info returns the table entry for fn, or nil if fn is out of range.
func Info(fn MathFunction) *Builtin {
	if fn >= numMathFunctions {
		return nil
	}
	return &table[fn]
}

// Functions returns every math builtin in declaration order.
func Functions() []MathFunction {
	fns := make([]MathFunction, numMathFunctions)
	for i := range fns {
		fns[i] = MathFunction(i)
	}
	return fns
}

// String returns the WGSL name of the builtin.
func (fn MathFunction) String() string {
	if b := Info(fn); b != nil {
		return b.Name
	}
	return "unknown"
}

// IsNative returns true if WGSL provides fn directly.
func (fn MathFunction) IsNative() bool {
	b := Info(fn)
	return b != nil && b.Native
}

// ----------------------------------------------------------------------------
// Numeric Builtins (Section 17.5)
// ----------------------------------------------------------------------------

func registerNumeric() {
	for fn, name := range map[MathFunction]string{
		MathAbs:         "abs",
		MathMin:         "min",
		MathMax:         "max",
		MathClamp:       "clamp",
		MathSaturate:    "saturate",
		MathCos:         "cos",
		MathCosh:        "cosh",
		MathSin:         "sin",
		MathSinh:        "sinh",
		MathTan:         "tan",
		MathTanh:        "tanh",
		MathAcos:        "acos",
		MathAsin:        "asin",
		MathAtan:        "atan",
		MathAtan2:       "atan2",
		MathAsinh:       "asinh",
		MathAcosh:       "acosh",
		MathAtanh:       "atanh",
		MathRadians:     "radians",
		MathDegrees:     "degrees",
		MathCeil:        "ceil",
		MathFloor:       "floor",
		MathRound:       "round",
		MathFract:       "fract",
		MathTrunc:       "trunc",
		MathModf:        "modf",
		MathFrexp:       "frexp",
		MathLdexp:       "ldexp",
		MathExp:         "exp",
		MathExp2:        "exp2",
		MathLog:         "log",
		MathLog2:        "log2",
		MathPow:         "pow",
		MathSign:        "sign",
		MathFma:         "fma",
		MathMix:         "mix",
		MathStep:        "step",
		MathSmoothStep:  "smoothstep",
		MathSqrt:        "sqrt",
		MathInverseSqrt: "inverseSqrt",
		MathQuantizeF16: "quantizeToF16",
	} {
		register(fn, name, CategoryNumeric, true)
	}
}

// ----------------------------------------------------------------------------
// Geometric Builtins
// ----------------------------------------------------------------------------

func registerGeometric() {
	for fn, name := range map[MathFunction]string{
		MathDot:         "dot",
		MathCross:       "cross",
		MathDistance:    "distance",
		MathLength:      "length",
		MathNormalize:   "normalize",
		MathFaceForward: "faceForward",
		MathReflect:     "reflect",
		MathRefract:     "refract",
	} {
		register(fn, name, CategoryGeometric, true)
	}

	// outerProduct exists in GLSL and HLSL front ends but not in WGSL.
	register(MathOuter, "outerProduct", CategoryGeometric, false)
}

// ----------------------------------------------------------------------------
// Matrix Builtins
// ----------------------------------------------------------------------------

func registerMatrix() {
	register(MathTranspose, "transpose", CategoryMatrix, true)
	register(MathDeterminant, "determinant", CategoryMatrix, true)

	// inverse exists in GLSL and HLSL front ends but not in WGSL.
	register(MathInverse, "inverse", CategoryMatrix, false)
}

// ----------------------------------------------------------------------------
// Bit Manipulation Builtins
// ----------------------------------------------------------------------------

func registerBits() {
	for fn, name := range map[MathFunction]string{
		MathCountTrailingZeros: "countTrailingZeros",
		MathCountLeadingZeros:  "countLeadingZeros",
		MathCountOneBits:       "countOneBits",
		MathReverseBits:        "reverseBits",
		MathExtractBits:        "extractBits",
		MathInsertBits:         "insertBits",
		MathFirstTrailingBit:   "firstTrailingBit",
		MathFirstLeadingBit:    "firstLeadingBit",
	} {
		register(fn, name, CategoryBits, true)
	}
}

// ----------------------------------------------------------------------------
// Packing Builtins
// ----------------------------------------------------------------------------

func registerPacking() {
	for fn, name := range map[MathFunction]string{
		MathPack4x8snorm:    "pack4x8snorm",
		MathPack4x8unorm:    "pack4x8unorm",
		MathPack2x16snorm:   "pack2x16snorm",
		MathPack2x16unorm:   "pack2x16unorm",
		MathPack2x16float:   "pack2x16float",
		MathPack4xI8:        "pack4xI8",
		MathPack4xU8:        "pack4xU8",
		MathPack4xI8Clamp:   "pack4xI8Clamp",
		MathPack4xU8Clamp:   "pack4xU8Clamp",
		MathUnpack4x8snorm:  "unpack4x8snorm",
		MathUnpack4x8unorm:  "unpack4x8unorm",
		MathUnpack2x16snorm: "unpack2x16snorm",
		MathUnpack2x16unorm: "unpack2x16unorm",
		MathUnpack2x16float: "unpack2x16float",
		MathUnpack4xI8:      "unpack4xI8",
		MathUnpack4xU8:      "unpack4xU8",
	} {
		register(fn, name, CategoryPacking, true)
	}
}
