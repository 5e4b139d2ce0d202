package dbexport

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const outputBufferSize = 64 * 1024

// createTemp creates an empty file next to path that is renamed over path
// once the export completes. It is created with mode 0666 so the umask
// decides the permissions, as it would for a plain os.Create of path.
func createTemp(path string) (*os.File, error) {
	name := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	return os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o666)
}

// encodedOutput buffers file writes and transcodes from UTF-8 when the
// output encoding asks for it.
type encodedOutput struct {
	buf *bufio.Writer
	enc *transform.Writer
	w   io.Writer
}

func newEncodedOutput(f io.Writer, opts Options) *encodedOutput {
	buf := bufio.NewWriterSize(f, outputBufferSize)
	o := &encodedOutput{buf: buf, w: buf}
	if opts.Encoding != nil {
		var t transform.Transformer = opts.Encoding.NewEncoder()
		if opts.ReplaceUnencodable {
			t = encoding.ReplaceUnsupported(opts.Encoding.NewEncoder())
		}
		o.enc = transform.NewWriter(buf, t)
		o.w = o.enc
	}
	return o
}

func (o *encodedOutput) Write(p []byte) (int, error) {
	return o.w.Write(p)
}

// Flush pushes buffered bytes to the file.
func (o *encodedOutput) Flush() error {
	return o.buf.Flush()
}

// Close flushes the encoder and the buffer. It does not close the file.
func (o *encodedOutput) Close() error {
	if o.enc != nil {
		if err := o.enc.Close(); err != nil {
			return err
		}
	}
	return o.buf.Flush()
}
