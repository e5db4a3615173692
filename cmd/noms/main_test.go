package main

import (
	"bufio"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture runs fn with a fresh os.Pipe wired up as its stdout argument and
// returns everything fn wrote.
func capture(t *testing.T, fn func(stdout *os.File) int) (string, int) {
	r, w, err := os.Pipe()
	assert.NoError(t, err)

	code := fn(w)
	assert.NoError(t, w.Close())

	out, err := io.ReadAll(bufio.NewReader(r))
	assert.NoError(t, err)
	return string(out), code
}

func TestRunCommit(t *testing.T) {
	assert := assert.New(t)

	out, code := capture(t, func(stdout *os.File) int {
		return run([]string{"commit", "ds1", "hello"}, stdout, os.Stderr)
	})
	assert.Equal(0, code)
	assert.NotEmpty(out)
}

func TestRunDatasetsEmpty(t *testing.T) {
	assert := assert.New(t)

	out, code := capture(t, func(stdout *os.File) int {
		return run([]string{"datasets"}, stdout, os.Stderr)
	})
	assert.Equal(0, code)
	assert.Empty(out)
}

func TestRunLogNoHead(t *testing.T) {
	assert := assert.New(t)

	out, code := capture(t, func(stdout *os.File) int {
		return run([]string{"log", "nope"}, stdout, os.Stderr)
	})
	assert.Equal(0, code)
	assert.Contains(out, "no head")
}

func TestRunRequiresSubcommand(t *testing.T) {
	assert := assert.New(t)

	out, code := capture(t, func(stdout *os.File) int {
		return run([]string{}, stdout, os.Stderr)
	})
	assert.Equal(1, code)
	assert.Empty(out)
}
