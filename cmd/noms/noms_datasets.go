package main

import (
	"context"
	"fmt"
	"os"

	"github.com/iammosespaulr/noms/datas"
	"github.com/iammosespaulr/noms/types"
)

func runDatasets(ctx context.Context, db datas.Database, stdout *os.File) int {
	m := db.Datasets(ctx)
	m.Iter(func(k, _ types.Value) bool {
		fmt.Fprintln(stdout, string(k.(types.String)))
		return false
	})
	return 0
}
