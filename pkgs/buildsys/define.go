package buildsys

// Define is a single -D<Key>=<Value> option.
type Define struct {
	Key   string
	Value string
}

// Defines is an ordered set of options with unique keys.
// Iteration order is insertion order; Set on an existing key keeps its slot.
type Defines []Define

// Set adds key=value, replacing the value in place when key already exists.
func (ds *Defines) Set(key, value string) {
	for i := range *ds {
		if (*ds)[i].Key == key {
			(*ds)[i].Value = value
			return
		}
	}
	*ds = append(*ds, Define{Key: key, Value: value})
}

// Get returns the value stored for key.
func (ds Defines) Get(key string) (string, bool) {
	for _, d := range ds {
		if d.Key == key {
			return d.Value, true
		}
	}
	return "", false
}

// Merge sets every entry of other on ds, in order.
func (ds *Defines) Merge(other Defines) {
	for _, d := range other {
		ds.Set(d.Key, d.Value)
	}
}

// Args renders ds as -D<KEY>=<VALUE> tokens.
func (ds Defines) Args() []string {
	if len(ds) == 0 {
		return nil
	}
	args := make([]string, 0, len(ds))
	for _, d := range ds {
		args = append(args, "-D"+d.Key+"="+d.Value)
	}
	return args
}
