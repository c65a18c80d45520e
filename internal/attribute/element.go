package attribute

// Element yields a scalar contribution. Elements are immutable once
// constructed and are evaluated at read time.
type Element interface {
	Value() float32
}

// Constant is a fixed value element.
type Constant float32

// Value returns the constant.
func (c Constant) Value() float32 { return float32(c) }

// Combined sums two elements lazily (base value + level bonus).
type Combined struct {
	first  Element
	second Element
}

// Combine returns an element whose value is a.Value() + b.Value().
// Nil operands count as zero.
func Combine(a, b Element) *Combined {
	return &Combined{first: a, second: b}
}

// Value evaluates both operands.
func (c *Combined) Value() float32 {
	var v float32
	if c.first != nil {
		v += c.first.Value()
	}
	if c.second != nil {
		v += c.second.Value()
	}
	return v
}

// Related reads another attribute of the same holder and scales it.
// Used for boosts like "+1 defense per 20 vitality".
type Related struct {
	holder *Holder
	input  *Definition
	factor float32
}

// NewRelated returns an element with value holder.Value(input) × factor.
func NewRelated(holder *Holder, input *Definition, factor float32) *Related {
	return &Related{holder: holder, input: input, factor: factor}
}

// Value evaluates the related attribute.
func (r *Related) Value() float32 {
	if r.holder == nil || r.input == nil {
		return 0
	}
	return r.holder.Value(r.input) * r.factor
}

// Input returns the attribute this element depends on.
func (r *Related) Input() *Definition { return r.input }
