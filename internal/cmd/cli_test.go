package cmd

import (
	"bytes"
	"context"

	"github.com/spf13/afero"
)

// PatchCLI returns a context which contains a CLI value with the output streams
// set to buffers and an in-memory filesystem. PatchCLI is used by tests to
// record the output produced by CLI commands.
func PatchCLI(ctx context.Context) (context.Context, BufferedStreams) {
	bufs := BufferedStreams{
		Stdin:  new(bytes.Buffer),
		Stdout: new(bytes.Buffer),
		Stderr: new(bytes.Buffer),
		Fs:     afero.NewMemMapFs(),
	}
	cli := &CLI{
		Stdout: bufs.Stdout,
		Stderr: bufs.Stderr,
		Stdin:  bufs.Stdin,
		Fs:     bufs.Fs,
	}
	return context.WithValue(ctx, ctxKey, cli), bufs
}

type BufferedStreams struct {
	Stdin  *bytes.Buffer
	Stdout *bytes.Buffer
	Stderr *bytes.Buffer

	Fs afero.Fs
}
