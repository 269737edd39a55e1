package routepath

// Param is a single captured segment.
type Param struct {
	Name string
	Raw  string
	Kind SegmentKind

	// Uint holds the parsed value for KindAnyInteger captures.
	Uint uint64
}

// Params holds the values captured by a successful match, in pattern order.
// The zero value is an empty set.
type Params struct {
	list []Param
}

func (p *Params) add(param Param) {
	p.list = append(p.list, param)
}

// Len returns the number of captured parameters.
func (p Params) Len() int {
	return len(p.list)
}

// All returns a copy of the captured parameters.
func (p Params) All() []Param {
	out := make([]Param, len(p.list))
	copy(out, p.list)
	return out
}

// Get returns the parameter with the given name.
func (p Params) Get(name string) (Param, bool) {
	for _, param := range p.list {
		if param.Name == name {
			return param, true
		}
	}
	return Param{}, false
}

// String returns the raw segment captured under name.
func (p Params) String(name string) (string, bool) {
	param, ok := p.Get(name)
	if !ok {
		return "", false
	}
	return param.Raw, true
}

// Uint returns the integer captured under name by an AnyInteger segment.
func (p Params) Uint(name string) (uint64, bool) {
	param, ok := p.Get(name)
	if !ok || param.Kind != KindAnyInteger {
		return 0, false
	}
	return param.Uint, true
}

// Merge returns a set containing p's parameters followed by other's.
// On duplicate names the later capture shadows the earlier one for Get.
func (p Params) Merge(other Params) Params {
	if len(other.list) == 0 {
		return p
	}
	if len(p.list) == 0 {
		return other
	}
	merged := make([]Param, 0, len(p.list)+len(other.list))
	for _, param := range p.list {
		if _, dup := other.Get(param.Name); !dup {
			merged = append(merged, param)
		}
	}
	merged = append(merged, other.list...)
	return Params{list: merged}
}

// Map returns the raw captures keyed by name.
func (p Params) Map() map[string]string {
	out := make(map[string]string, len(p.list))
	for _, param := range p.list {
		out[param.Name] = param.Raw
	}
	return out
}
