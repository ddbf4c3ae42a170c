package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ecomload/internal/domain"
	"ecomload/internal/port"
)

// Location is a parsed source address: a local path or an s3://bucket/key URI.
type Location struct {
	Raw    string
	Bucket string
	Key    string
	Path   string
}

// IsRemote reports whether the location names an object in S3.
func (l Location) IsRemote() bool { return l.Bucket != "" }

// Ext returns the lower-case file extension, including the dot.
func (l Location) Ext() string {
	if l.IsRemote() {
		return strings.ToLower(filepath.Ext(l.Key))
	}
	return strings.ToLower(filepath.Ext(l.Path))
}

// ParseLocation splits raw into a Location. Relative local paths are joined to dir.
func ParseLocation(raw, dir string) (Location, error) {
	if raw == "" {
		return Location{}, fmt.Errorf("%w: empty", domain.ErrInvalidLocation)
	}
	if rest, ok := strings.CutPrefix(raw, "s3://"); ok {
		bucket, key, found := strings.Cut(rest, "/")
		if !found || bucket == "" || key == "" {
			return Location{}, fmt.Errorf("%w: %q", domain.ErrInvalidLocation, raw)
		}
		return Location{Raw: raw, Bucket: bucket, Key: key}, nil
	}
	path := raw
	if dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return Location{Raw: raw, Path: path}, nil
}

// Opener turns locations into row Readers.
type Opener struct {
	objects port.ObjectStorage
	dir     string
}

// NewOpener returns an Opener resolving relative paths against dir. objects
// may be nil, in which case s3:// locations fail to open.
func NewOpener(objects port.ObjectStorage, dir string) *Opener {
	return &Opener{objects: objects, dir: dir}
}

// Resolve parses raw against the opener's data directory.
func (o *Opener) Resolve(raw string) (Location, error) {
	return ParseLocation(raw, o.dir)
}

// Open returns a Reader over the rows at raw. Files ending in .xlsx are read
// as workbooks; everything else as CSV.
func (o *Opener) Open(ctx context.Context, raw string) (Reader, error) {
	loc, err := o.Resolve(raw)
	if err != nil {
		return nil, err
	}

	var rc io.ReadCloser
	if loc.IsRemote() {
		if o.objects == nil {
			return nil, fmt.Errorf("%w: %s: object storage is not configured", domain.ErrInvalidLocation, raw)
		}
		rc, err = o.objects.Open(ctx, loc.Bucket, loc.Key)
	} else {
		rc, err = os.Open(loc.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", loc.Raw, err)
	}

	if loc.Ext() == ".xlsx" {
		defer func() { _ = rc.Close() }()
		return NewSheetReader(rc, "")
	}
	return NewCSVReader(rc)
}
