package fspath

import "errors"

var (
	ErrInvalidDirectory    = errors.New("not a directory")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrEmptyEnumeration    = errors.New("no files found")
	ErrUnsupportedPathKind = errors.New("unsupported path kind")
	ErrIsDirectory         = errors.New("is a directory")
	ErrChecksumMismatch    = errors.New("checksum mismatch")
)

// FilesystemError records a copy, delete or rename the host rejected.
// The host error is kept so errors.Is(err, fs.ErrNotExist) and friends work.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// Wrap returns nil for a nil err and a *FilesystemError otherwise.
func Wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var fsErr *FilesystemError
	if errors.As(err, &fsErr) {
		return err
	}
	return &FilesystemError{Op: op, Path: path, Err: err}
}
