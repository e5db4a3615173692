package main

import (
	"context"
	"fmt"
	"os"

	"github.com/iammosespaulr/noms/datas"
	"github.com/iammosespaulr/noms/types"
)

func runCommit(ctx context.Context, db datas.Database, datasetID, value string, stdout *os.File) int {
	ds := db.GetDataset(ctx, datasetID)
	ds, err := db.CommitValue(ctx, ds, types.String(value))
	if err != nil {
		fmt.Fprintln(stdout, err)
		return 1
	}
	fmt.Fprintf(stdout, "%s\n", ds.HeadRef().TargetHash().String())
	return 0
}
