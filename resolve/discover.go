package resolve

// discover populates a fresh candidate table with every base package
// transitively reachable from root, under any candidate configuration of
// any reachable package.
//
// It maintains a visited set of nodes (package, configuration) rather than
// a visited set of packages so that it can terminate on cyclic graphs -
// including a package that depends on itself at the same configuration -
// without losing coverage: a package can still be revisited at a
// different configuration than one already seen.
func discover[C comparable, S any](root Node[C], host Host[C, S]) (*candidateTable[C], error) {
	table := newCandidateTable[C]()
	visited := make(map[Node[C]]bool)

	var visit func(parent Node[C]) error
	visit = func(parent Node[C]) error {
		if visited[parent] {
			return nil
		}
		visited[parent] = true

		children, err := host.Children(parent)
		if err != nil {
			return err
		}

		for _, ch := range children {
			base := BasePackage(ch.Pack)

			idx, isNew := table.slot(base)
			if isNew {
				all, err := host.AllConfigs(base)
				if err != nil {
					return err
				}
				table.set(idx, all)
			}

			extra, err := host.SpecificConfigs(ch)
			if err != nil {
				return err
			}
			if len(extra) > 0 {
				table.set(idx, append(append([]C(nil), extra...), table.at(idx)...))
			}

			for _, v := range table.at(idx) {
				if err := visit(Node[C]{Pack: ch.Pack, Config: v}); err != nil {
					return err
				}
			}
		}

		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return table, nil
}
