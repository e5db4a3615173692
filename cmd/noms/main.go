// Command noms is a small CLI over an in-memory DataStore: enough to list
// datasets, walk a dataset's commit history, and commit a new value. It reads
// cache size and a backend name from a .nomsconfig, the way the real noms CLI
// reads its own config before touching a database. The backend name is only
// logged: every run uses a fresh in-memory chunk store.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/iammosespaulr/noms/chunks"
	"github.com/iammosespaulr/noms/config"
	"github.com/iammosespaulr/noms/datas"
)

var log = logrus.WithField("component", "noms")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	app := kingpin.New("noms", "A command-line interface for a noms-style DataStore.")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)

	datasetsCmd := app.Command("datasets", "List every dataset id in the database.")
	logCmd := app.Command("log", "Print the commit history of a dataset, newest first.")
	logDataset := logCmd.Arg("dataset", "dataset id").Required().String()
	commitCmd := app.Command("commit", "Commit a string value onto a dataset.")
	commitDataset := commitCmd.Arg("dataset", "dataset id").Required().String()
	commitValue := commitCmd.Arg("value", "value to commit").Required().String()

	cmd, err := app.Parse(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	cfg, err := config.FindNomsConfig()
	if err == config.ErrNoConfig {
		cfg = config.NewDefaultConfig()
	} else if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	cs := chunks.NewMemoryStore()
	db := datas.NewDatabaseWithCache(cs, cfg.CacheSize)
	defer db.Close()
	log.Debugf("backend=%s cache=%s", cfg.Backend, humanize.Bytes(cfg.CacheSize))

	ctx := context.Background()
	useColor := isatty.IsTerminal(stdout.Fd())

	switch cmd {
	case datasetsCmd.FullCommand():
		return runDatasets(ctx, db, stdout)
	case logCmd.FullCommand():
		return runLog(ctx, db, *logDataset, stdout, useColor)
	case commitCmd.FullCommand():
		return runCommit(ctx, db, *commitDataset, *commitValue, stdout)
	}
	return 0
}
