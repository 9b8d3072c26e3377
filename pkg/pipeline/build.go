package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/bintree/pkg/cache"
	"github.com/matzehuels/bintree/pkg/tree"
	"github.com/matzehuels/bintree/pkg/values"
)

// Built is the output of the build stage.
type Built struct {
	Values   []string
	Root     *tree.Node[string]
	Depth    int
	Levels   [][]tree.Slot[string]
	TreeHash string
}

// Build orders the values and builds the minimum-height tree from them.
func Build(opts Options) (*Built, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}

	vals, err := values.Sort(opts.Values, opts.Order)
	if err != nil {
		return nil, err
	}
	if opts.Unique {
		vals = values.Unique(vals)
	}

	root := tree.BuildMinHeight(vals)
	levels := tree.SerializeByLevel(root)

	b := &Built{
		Values: vals,
		Root:   root,
		Depth:  tree.MaxDepth(root),
		Levels: levels,
	}
	b.TreeHash = treeHash(levels)
	return b, nil
}

// treeHash identifies a tree by its level-wise form, which determines both
// the values and the shape.
func treeHash(levels [][]tree.Slot[string]) string {
	data, _ := json.Marshal(levels)
	return cache.Hash(data)
}
