package core

import "maps"

// -----------------------------------------------------------------------------
// Input / Output
// -----------------------------------------------------------------------------

// Input carries the named values a task is invoked with.
type Input map[string]any

// Output carries the named values a task produced.
type Output map[string]any

func (i Input) Clone() Input {
	if i == nil {
		return nil
	}
	out := make(Input, len(i))
	maps.Copy(out, i)
	return out
}

func (o Output) Clone() Output {
	if o == nil {
		return nil
	}
	out := make(Output, len(o))
	maps.Copy(out, o)
	return out
}

// Keys returns the field names present on the input, in unspecified order.
func (i Input) Keys() []string {
	keys := make([]string, 0, len(i))
	for k := range i {
		keys = append(keys, k)
	}
	return keys
}

func (o Output) AsMap() map[string]any {
	return map[string]any(o)
}
