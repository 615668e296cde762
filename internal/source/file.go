package source

import (
	"context"
	"io"
	"os"

	"github.com/i474232898/weather-report/internal/weather"
)

// FileSource implements weather.Source for a delimited file on local disk.
type FileSource struct {
	name string
	path string
}

func NewFileSource(name, path string) *FileSource {
	return &FileSource{name: name, path: path}
}

func (s *FileSource) Name() string {
	return s.name
}

// Path returns the file the source reads.
func (s *FileSource) Path() string {
	return s.path
}

func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(s.path)
}

var _ weather.Source = (*FileSource)(nil)
