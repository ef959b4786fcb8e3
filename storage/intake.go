package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/util"
	"github.com/kbukum/scribe/validation"
)

// Upload is an accepted file held in storage.
type Upload struct {
	// Key is the storage key, "<id>.<ext>".
	Key string
	// Path is the filesystem path handed to the pipeline.
	Path string
	// Name is the client-supplied file name, sanitized.
	Name string
	// Size is the number of bytes written.
	Size int64
	// SHA256 is the hex digest of the content.
	SHA256 string
}

// Intake validates and stores uploads.
type Intake struct {
	store    Storage
	cfg      Config
	maxBytes int64
	log      *logger.Logger
}

// NewIntake creates an Intake writing to store.
func NewIntake(store Storage, cfg Config, log *logger.Logger) (*Intake, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Intake{
		store:    store,
		cfg:      cfg,
		maxBytes: cfg.MaxBytes(),
		log:      log.WithComponent("intake"),
	}, nil
}

// MaxBytes is the upload ceiling in bytes.
func (in *Intake) MaxBytes() int64 { return in.maxBytes }

// Check validates a file name and declared size before any bytes are read.
// A negative size means the client did not declare one.
func (in *Intake) Check(filename string, size int64) error {
	v := validation.New().
		Required("file", filename).
		OneOf("file", extension(filename), "file type", in.cfg.AllowedExtensions)
	if size >= 0 {
		v.NotEmpty("file", size).AtMost("file", size, in.maxBytes, in.cfg.MaxSize)
	}
	return v.Err()
}

// Accept checks and stores r under "<id>.<ext>". The body is read at most
// one byte past the ceiling; an oversized or empty body is removed again
// and rejected as invalid input.
func (in *Intake) Accept(ctx context.Context, id, filename string, size int64, r io.Reader) (*Upload, error) {
	if err := in.Check(filename, size); err != nil {
		return nil, err
	}

	key := id + "." + extension(filename)
	hasher := sha256.New()
	counter := &countingWriter{}
	body := io.TeeReader(io.LimitReader(r, in.maxBytes+1), io.MultiWriter(hasher, counter))

	if err := in.store.Upload(ctx, key, body); err != nil {
		in.remove(ctx, key)
		return nil, errors.Internal(err)
	}

	switch {
	case counter.n == 0:
		in.remove(ctx, key)
		return nil, errors.InvalidInput("file", "file is empty")
	case counter.n > in.maxBytes:
		in.remove(ctx, key)
		return nil, errors.InvalidInput("file", fmt.Sprintf("file exceeds the %s upload limit", in.cfg.MaxSize))
	}

	u := &Upload{
		Key:    key,
		Path:   in.store.Path(key),
		Name:   util.SanitizeFilename(filename),
		Size:   counter.n,
		SHA256: hex.EncodeToString(hasher.Sum(nil)),
	}
	in.log.Debug("upload stored", logger.Fields(
		logger.FieldPath, u.Path,
		logger.FieldBytes, u.Size,
	))
	return u, nil
}

// Release deletes an accepted upload. Failures are logged.
func (in *Intake) Release(ctx context.Context, u *Upload) {
	if u == nil {
		return
	}
	in.remove(ctx, u.Key)
}

func (in *Intake) remove(ctx context.Context, key string) {
	if err := in.store.Delete(ctx, key); err != nil {
		in.log.Warn("failed to delete upload", logger.Fields(
			"key", key,
			logger.FieldError, err.Error(),
		))
	}
}

// extension returns the normalized extension of filename, "" when it has none.
func extension(filename string) string {
	return util.NormalizeExtension(filepath.Ext(filename))
}

type countingWriter struct{ n int64 }

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}
