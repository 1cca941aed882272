package wl

import (
	"math"

	"github.com/pkg/errors"

	"github.com/waydemo/waydemo/shm"
	"github.com/waydemo/waydemo/video"
	"github.com/waydemo/waydemo/wl/wlp"
)

// ErrBufferBusy is returned when the pixels of a buffer the compositor may
// be reading are requested.
var ErrBufferBusy = errors.New("buffer is in use by the compositor")

type bufferState int

const (
	bufferFree bufferState = iota // the client may paint
	bufferBusy                    // committed, waiting for wl_buffer.release
)

func (s bufferState) String() string {
	if s == bufferBusy {
		return "busy"
	}
	return "free"
}

// Buffer is a wl_buffer backed by its own shared memory segment.
type Buffer struct {
	buf   *wlp.Buffer
	seg   *shm.Segment
	surf  *video.Surface
	state bufferState
}

// NewBuffer allocates a width x height XRGB8888 buffer and sets every byte
// of it to 0xFF. Release events for it go to l.
func NewBuffer(s *wlp.Shm, width, height int, l wlp.BufferListener) (*Buffer, error) {
	if s == nil {
		return nil, errors.New("wl_shm is not bound")
	}
	stride, size, err := bufferSize(width, height)
	if err != nil {
		return nil, err
	}

	seg, err := shm.Create(size)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create shared memory")
	}
	surf, err := video.NewSurface(seg.Bytes(), width, height, video.XRGB8888)
	if err != nil {
		seg.Close()
		return nil, err
	}

	pool, err := s.CreatePool(seg.File(), int32(size))
	if err != nil {
		seg.Close()
		return nil, errors.Wrap(err, "unable to create shm pool")
	}
	buf, err := pool.CreateBuffer(l, 0, int32(width), int32(height), int32(stride), wlp.ShmFormatXrgb8888)
	if err != nil {
		pool.Destroy()
		seg.Close()
		return nil, errors.Wrap(err, "unable to create buffer")
	}
	if err := pool.Destroy(); err != nil {
		buf.Destroy()
		seg.Close()
		return nil, errors.Wrap(err, "unable to destroy shm pool")
	}
	if err := seg.CloseFile(); err != nil {
		buf.Destroy()
		seg.Close()
		return nil, err
	}

	surf.Fill(0xFF)
	return &Buffer{buf: buf, seg: seg, surf: surf}, nil
}

// bufferSize is the stride and byte size of a width x height XRGB8888
// buffer. wl_shm carries both as int32, so larger buffers are refused.
func bufferSize(width, height int) (stride, size int, err error) {
	if width <= 0 || height <= 0 {
		return 0, 0, errors.Errorf("invalid buffer size %dx%d", width, height)
	}
	bpp := int64(video.XRGB8888.BytesPerPixel)
	if int64(width)*bpp*int64(height) > math.MaxInt32 {
		return 0, 0, errors.Errorf("buffer %dx%d exceeds the wl_shm pool size limit", width, height)
	}
	stride = width * int(bpp)
	return stride, stride * height, nil
}

// ID is the wl_buffer object id, or 0 once destroyed.
func (b *Buffer) ID() uint32 {
	if b.buf == nil {
		return 0
	}
	return b.buf.ID()
}

func (b *Buffer) Busy() bool {
	return b.state == bufferBusy
}

// Surface gives access to the pixels. It fails while the compositor owns
// the buffer.
func (b *Buffer) Surface() (*video.Surface, error) {
	if b.state == bufferBusy {
		return nil, ErrBufferBusy
	}
	if b.surf == nil {
		return nil, errors.New("buffer has been destroyed")
	}
	return b.surf, nil
}

// attached marks the buffer as handed to the compositor by a commit.
func (b *Buffer) attached() {
	b.state = bufferBusy
}

func (b *Buffer) release() {
	b.state = bufferFree
}

// Destroy destroys the wl_buffer and unmaps its memory.
func (b *Buffer) Destroy() error {
	var err error
	if b.buf != nil {
		err = b.buf.Destroy()
		b.buf = nil
	}
	if b.seg != nil {
		if serr := b.seg.Close(); err == nil {
			err = serr
		}
		b.seg = nil
	}
	b.surf = nil
	return errors.Wrap(err, "unable to destroy buffer")
}
