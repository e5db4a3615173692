package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/iammosespaulr/noms/d"
	"github.com/iammosespaulr/noms/datas"
	"github.com/iammosespaulr/noms/types"
)

// runLog walks a dataset's commit graph depth-first from its head, printing
// each commit once in the order visited. It does not topologically sort
// merge commits.
func runLog(ctx context.Context, db datas.Database, datasetID string, stdout *os.File, useColor bool) int {
	ds := db.GetDataset(ctx, datasetID)
	head, ok := ds.MaybeHead()
	if !ok {
		fmt.Fprintf(stdout, "dataset %s has no head\n", datasetID)
		return 0
	}

	hashColor := color.New(color.FgYellow)
	seen := map[string]bool{}
	var visit func(c types.Struct)
	visit = func(c types.Struct) {
		h := types.NewRef(c).TargetHash()
		if seen[h.String()] {
			return
		}
		seen[h.String()] = true

		if useColor {
			hashColor.Fprintf(stdout, "%s\n", h.String())
		} else {
			fmt.Fprintln(stdout, h.String())
		}
		fmt.Fprintf(stdout, "%v\n\n", c.Get(datas.ValueField))

		parents, ok := c.Get(datas.ParentsField).(types.Set)
		d.PanicIfFalse(ok)
		parents.Iter(func(v types.Value) bool {
			ref, ok := v.(types.Ref)
			d.PanicIfFalse(ok)
			parent, ok := ref.TargetValue(ctx, db).(types.Struct)
			d.PanicIfFalse(ok)
			visit(parent)
			return false
		})
	}
	visit(head)
	return 0
}
