package output

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"pkg.jsn.cam/talentfixtures/pkg/fixture"
)

const (
	indent = "  "

	// cancelCheckEvery is how many records are written between context checks
	cancelCheckEvery = 1024
)

// Options controls a single fixture write
type Options struct {
	// OnRecord is called after each record is encoded (progress reporting)
	OnRecord func()
}

// Result describes a completed write
type Result struct {
	Path    string
	Records int
	Bytes   int64  // bytes on disk
	Digest  string // hex SHA-256 of the bytes on disk
}

// IsCompressed reports whether path selects gzip output
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, ".gz")
}

// WriteFile generates count records from g and writes them to path as a JSON
// array with two-space indentation. An existing file is truncated. Paths ending
// in .gz are gzip-compressed.
func WriteFile(ctx context.Context, path string, g fixture.Generator, count int, opts Options) (res *Result, err error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", fixture.ErrInvalidCount, count)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			res, err = nil, fmt.Errorf("close output %s: %w", path, cerr)
		}
	}()

	hash := sha256.New()
	counter := &countingWriter{w: io.MultiWriter(file, hash)}
	buf := bufio.NewWriter(counter)

	var w io.Writer = buf
	var zw *gzip.Writer
	if IsCompressed(path) {
		zw = gzip.NewWriter(buf)
		w = zw
	}

	if err := Encode(ctx, w, g, count, opts); err != nil {
		return nil, fmt.Errorf("write output %s: %w", path, err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("compress output %s: %w", path, err)
		}
	}
	if err := buf.Flush(); err != nil {
		return nil, fmt.Errorf("write output %s: %w", path, err)
	}

	return &Result{
		Path:    path,
		Records: count,
		Bytes:   counter.n,
		Digest:  hex.EncodeToString(hash.Sum(nil)),
	}, nil
}

// Encode writes count records from g to w. The layout matches
// json.MarshalIndent(records, "", "  ") followed by a newline, except that
// HTML characters are written literally.
func Encode(ctx context.Context, w io.Writer, g fixture.Generator, count int, opts Options) error {
	var elem bytes.Buffer
	enc := json.NewEncoder(&elem)
	enc.SetEscapeHTML(false)
	enc.SetIndent(indent, indent)

	if _, err := io.WriteString(w, "[\n"); err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		elem.Reset()
		if err := enc.Encode(g.Record(i)); err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
		line := bytes.TrimSuffix(elem.Bytes(), []byte("\n"))

		if _, err := io.WriteString(w, indent); err != nil {
			return err
		}
		if _, err := w.Write(line); err != nil {
			return err
		}
		sep := ",\n"
		if i == count-1 {
			sep = "\n"
		}
		if _, err := io.WriteString(w, sep); err != nil {
			return err
		}

		if opts.OnRecord != nil {
			opts.OnRecord()
		}
	}

	_, err := io.WriteString(w, "]\n")
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
