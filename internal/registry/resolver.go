package registry

import (
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/colorbar"
)

// checkReferenceShape verifies that a reference record carries nothing but
// the reference itself and optional auxiliary metadata.
func checkReferenceShape(name string, raw colorbar.Raw) error {
	var extra []string
	for key := range raw {
		if key != "reference" && key != "auxiliary" {
			extra = append(extra, key)
		}
	}
	if len(extra) > 0 {
		return &MalformedReferenceError{Name: name, Fields: extra}
	}
	return nil
}

// resolve follows a reference chain to its terminal concrete record. The
// visited set carries every name already traversed in the current chain, so
// a repeated name terminates resolution deterministically.
func resolve(name string, raw colorbar.Raw, lookup func(string) (colorbar.Raw, bool)) (colorbar.Raw, error) {
	visited := map[string]bool{name: true}
	chain := []string{name}

	current := raw
	for current.IsReference() {
		if err := checkReferenceShape(chain[len(chain)-1], current); err != nil {
			return nil, err
		}

		target := current.Reference()
		if visited[target] {
			return nil, &CircularReferenceError{Chain: append(chain, target)}
		}

		next, ok := lookup(target)
		if !ok {
			return nil, &UnknownReferenceError{Name: chain[len(chain)-1], Target: target}
		}

		visited[target] = true
		chain = append(chain, target)
		current = next
	}

	return current, nil
}
