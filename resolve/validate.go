package resolve

import "fmt"

// conflict describes the outcome of validating a selection: either the
// selection is consistent (index == -1) or index names the table position
// whose advancement is required to make progress, together with the
// diagnostic text describing why.
type conflict struct {
	index   int
	message string
}

const consistent = -1

// validate walks the dependency tree rooted at root under the current
// selection and decides whether every edge is satisfied.
//
// The walk special-cases edges seen directly under root: a mismatch there
// is resolved purely by advancing the child (the root's own selection was
// fixed by the caller and cannot itself be advanced), so it is returned
// immediately rather than folded into the running maximum used at deeper
// levels. The two validation frames are distinguished by node identity -
// parent == root - rather than a separate "is root" flag, so that a node
// that happens to recur to exactly the root's (package, configuration)
// pair is treated the same way the root itself would be.
func validate[C comparable, S any](root Node[C], table *candidateTable[C], selection []int, host Host[C, S], diag Diagnostics) (conflict, error) {
	visited := make(map[Node[C]]bool)

	var walk func(parent Node[C]) (conflict, error)
	walk = func(parent Node[C]) (conflict, error) {
		if visited[parent] {
			return conflict{index: consistent}, nil
		}
		visited[parent] = true

		isRoot := parent == root

		// Root's own base package need not have a table slot - it's never
		// anyone's child, so discovery never allocates one for it unless a
		// dependency cycles back to it. parentIdx is only consulted on the
		// non-root branches below, where the parent was necessarily reached
		// as somebody's child and so is guaranteed a slot.
		parentIdx := consistent
		if !isRoot {
			parentIdx = table.indexOf(BasePackage(parent.Pack))
		}

		maxc := conflict{index: consistent}

		children, err := host.Children(parent)
		if err != nil {
			return conflict{}, err
		}

		for _, ch := range children {
			base := BasePackage(ch.Pack)
			childIdx := table.indexOf(base)
			candidates := table.at(childIdx)

			if len(candidates) == 0 {
				msg := fmt.Sprintf("package %q (required by %q) has no known configurations", base, parent.Pack)
				if isRoot {
					return conflict{}, &InvalidRootError{Parent: parent.Pack, Child: base}
				}
				diag.Edge(msg)
				return conflict{index: parentIdx, message: msg}, nil
			}

			config := candidates[selection[childIdx]]
			ok, err := host.Matches(ch.Configs, config)
			if err != nil {
				return conflict{}, err
			}

			if !ok {
				msg := fmt.Sprintf("%q requires %q to satisfy %v, but %v is selected", parent.Pack, ch.Pack, ch.Configs, config)
				diag.Edge(msg)
				if isRoot {
					return conflict{index: childIdx, message: msg}, nil
				}
				cpi := childIdx
				if parentIdx > cpi {
					cpi = parentIdx
				}
				if cpi > maxc.index {
					maxc = conflict{index: cpi, message: msg}
				}
				continue
			}

			sub, err := walk(Node[C]{Pack: ch.Pack, Config: config})
			if err != nil {
				return conflict{}, err
			}
			if sub.index > maxc.index {
				maxc = sub
			}
		}

		return maxc, nil
	}

	return walk(root)
}
