// Package shm allocates anonymous shared memory that can be handed to a
// wayland compositor as a file descriptor.
package shm

import (
	"io/ioutil"
	"os"

	memfd "github.com/justincormack/go-memfd"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Log receives the package's non-fatal warnings.
var Log logrus.FieldLogger = logrus.WithField("component", "shm")

// Segment is an anonymous file of a fixed size and a read/write shared
// mapping of all of it.
type Segment struct {
	f    *os.File
	data []byte
}

// Create allocates size bytes. A memfd is used when the kernel has them;
// otherwise an unlinked file is created in XDG_RUNTIME_DIR.
func Create(size int) (*Segment, error) {
	if size <= 0 {
		return nil, errors.Errorf("invalid segment size %d", size)
	}
	f, err := createFile(size)
	if err != nil {
		return nil, errors.Wrapf(err, "creating a buffer file for %d B failed", size)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "mmap failed")
	}
	return &Segment{f: f, data: data}, nil
}

func createFile(size int) (*os.File, error) {
	mfd, err := memfd.Create()
	if err == nil {
		if err := mfd.Truncate(int64(size)); err != nil {
			mfd.Close()
			return nil, errors.Wrap(err, "unable to resize memfd")
		}
		// the compositor maps the file too; it must not shrink under it
		if err := mfd.SetSeals(memfd.SealShrink); err != nil {
			Log.WithError(err).Warn("unable to seal memfd against shrinking")
		}
		return mfd.File, nil
	}
	return createTempFile(size)
}

func createTempFile(size int) (*os.File, error) {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		return nil, errors.New("XDG_RUNTIME_DIR is not set in environment")
	}
	f, err := ioutil.TempFile(dir, "waydemo-shared-")
	if err != nil {
		return nil, errors.Wrap(err, "unable to create backing file")
	}
	if err := unix.Unlink(f.Name()); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "unable to unlink backing file")
	}
	if err := allocate(f, size); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// allocate reserves the file's blocks up front so running out of space is
// reported here rather than as SIGBUS on first touch. File systems without
// fallocate get a sparse file.
func allocate(f *os.File, size int) error {
	for {
		err := unix.Fallocate(int(f.Fd()), 0, 0, int64(size))
		switch err {
		case nil:
			return nil
		case unix.EINTR:
			continue
		case unix.EOPNOTSUPP, unix.EINVAL:
			return errors.Wrap(f.Truncate(int64(size)), "unable to resize backing file")
		default:
			return errors.Wrap(err, "unable to allocate backing file")
		}
	}
}

// File is the descriptor to pass to the compositor. It is nil after
// CloseFile.
func (s *Segment) File() *os.File {
	return s.f
}

func (s *Segment) Size() int {
	return len(s.data)
}

// Bytes is the mapped memory. It is nil after Close.
func (s *Segment) Bytes() []byte {
	return s.data
}

// CloseFile closes the descriptor but keeps the mapping. Once the
// compositor has its own copy of the descriptor, the client no longer needs
// it.
func (s *Segment) CloseFile() error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return errors.Wrap(err, "unable to close backing file")
}

// Close unmaps the memory and closes the descriptor if still open.
func (s *Segment) Close() error {
	err := s.CloseFile()
	if s.data != nil {
		if uerr := unix.Munmap(s.data); uerr != nil && err == nil {
			err = errors.Wrap(uerr, "munmap failed")
		}
		s.data = nil
	}
	return err
}
