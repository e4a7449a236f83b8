package keymap

import "slices"

// Resolver maps key strings to actions. When two bindings claim the same
// key, the first one wins.
type Resolver struct {
	actions map[string]Action
	keys    map[Action][]string
}

// NewResolver indexes bindings by key and by action.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actions: make(map[string]Action),
		keys:    make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, k := range b.Keys {
			if _, taken := r.actions[k]; taken {
				continue
			}
			r.actions[k] = b.Action
			r.keys[b.Action] = append(r.keys[b.Action], k)
		}
	}
	return r
}

// Resolve returns the action bound to key, or "" when none is.
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// KeysFor returns the keys that resolve to action, in binding order.
func (r *Resolver) KeysFor(action Action) []string {
	return slices.Clone(r.keys[action])
}
