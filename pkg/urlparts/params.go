package urlparts

// Param is a single query parameter.
type Param struct {
	Key string `json:"key"`

	// Value is meaningful only when HasValue is true. A segment such as
	// "?flag" has a key but no value, which is distinct from "?flag=".
	Value    string `json:"value,omitempty"`
	HasValue bool   `json:"hasValue"`
}

// Params is an ordered set of query parameters with unique keys.
type Params []Param

// Get returns the value stored for key. The boolean is false when the key is
// missing or was given without a value.
func (p Params) Get(key string) (string, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, param.HasValue
		}
	}
	return "", false
}

// Has reports whether key appeared in the query string.
func (p Params) Has(key string) bool {
	for _, param := range p {
		if param.Key == key {
			return true
		}
	}
	return false
}

// Keys returns the keys in first-occurrence order.
func (p Params) Keys() []string {
	keys := make([]string, len(p))
	for i, param := range p {
		keys[i] = param.Key
	}
	return keys
}

// Len returns the number of distinct keys.
func (p Params) Len() int {
	return len(p)
}

// Map returns the parameters as a map. Keys without a value map to nil.
func (p Params) Map() map[string]*string {
	m := make(map[string]*string, len(p))
	for _, param := range p {
		if !param.HasValue {
			m[param.Key] = nil
			continue
		}
		v := param.Value
		m[param.Key] = &v
	}
	return m
}
