package wavfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"go.uber.org/multierr"
)

// Container layout written by this package: RIFF/WAVE, PCM, mono, 16-bit.
const (
	PCMFormat   = 1
	NumChannels = 1
	BitDepth    = 16
)

// Writer streams mono 16-bit PCM samples into a WAV file on disk.
// The RIFF and data chunk sizes are patched in on Close.
type Writer struct {
	path   string
	f      *os.File
	enc    *wav.Encoder
	format *audio.Format
	frames int
	closed bool
}

// Create makes the parent directory of path if it does not exist, truncates
// or creates path and writes the container header.
func Create(path string, sampleRate int) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}

	w := &Writer{
		path:   path,
		f:      f,
		enc:    wav.NewEncoder(f, sampleRate, BitDepth, NumChannels, PCMFormat),
		format: &audio.Format{NumChannels: NumChannels, SampleRate: sampleRate},
	}

	// An empty buffer forces the fmt and data chunk headers out, so a
	// zero-sample file is still a valid container.
	if err := w.enc.Write(w.buffer(nil)); err != nil {
		return nil, multierr.Append(fmt.Errorf("write wav header: %w", err), f.Close())
	}
	return w, nil
}

// Write appends samples. Values are written as int16; callers must keep
// them within the 16-bit range.
func (w *Writer) Write(samples []int) error {
	if w.closed {
		return fmt.Errorf("write %s: writer closed", w.path)
	}
	if err := w.enc.Write(w.buffer(samples)); err != nil {
		return fmt.Errorf("write samples: %w", err)
	}
	w.frames += len(samples)
	return nil
}

// Frames returns the number of samples written so far.
func (w *Writer) Frames() int {
	return w.frames
}

// Path returns the destination file path.
func (w *Writer) Path() string {
	return w.path
}

// Close finalizes the chunk sizes and closes the file. Idempotent.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	var err error
	if cerr := w.enc.Close(); cerr != nil {
		err = fmt.Errorf("finalize wav header: %w", cerr)
	}
	if cerr := w.f.Close(); cerr != nil {
		err = multierr.Append(err, fmt.Errorf("close output file: %w", cerr))
	}
	return err
}

func (w *Writer) buffer(samples []int) *audio.IntBuffer {
	return &audio.IntBuffer{
		Format:         w.format,
		Data:           samples,
		SourceBitDepth: BitDepth,
	}
}
