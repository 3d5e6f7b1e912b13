package audio

import "math"

// Defaults for the detuned-harmonic test tone.
const (
	DefaultSampleRate = 48000
	DefaultDuration   = 10.0
	DefaultF0         = 440.0
	DefaultEpsilon    = 0.001
	DefaultA0         = 0.5
	DefaultA2         = 0.25
)

const (
	// ClipLevel is the hard limit applied to the summed waveform before quantization.
	ClipLevel = 0.999
	// FullScale maps 1.0 to the largest positive int16.
	FullScale = 32767
	// MaxSamples keeps a mono 16-bit RIFF file under the 4 GiB size field.
	MaxSamples = (1<<32 - 1 - 44) / 2
)

// Params describes a fundamental plus a detuned second harmonic:
//
//	x(t) = A0*sin(2π*F0*t) + A2*sin(2π*F2*t),  F2 = 2*F0*(1+Epsilon)
//
// None of the fields are range checked.
type Params struct {
	F0         float64 // fundamental, Hz
	Epsilon    float64 // fractional detune of the 2x harmonic (0.001 = +0.1%)
	A0         float64 // linear amplitude of the fundamental
	A2         float64 // linear amplitude of the 2x harmonic
	SampleRate int     // Hz
	Duration   float64 // seconds
}

// DefaultParams returns the parameters of the stock 440 Hz test tone.
func DefaultParams() Params {
	return Params{
		F0:         DefaultF0,
		Epsilon:    DefaultEpsilon,
		A0:         DefaultA0,
		A2:         DefaultA2,
		SampleRate: DefaultSampleRate,
		Duration:   DefaultDuration,
	}
}

// F2 returns the frequency of the detuned second harmonic.
func (p Params) F2() float64 {
	return 2 * p.F0 * (1 + p.Epsilon)
}

// NumSamples returns round(SampleRate * Duration), capped at MaxSamples.
// NaN or non-positive products give zero samples.
func (p Params) NumSamples() int {
	n := math.Round(float64(p.SampleRate) * p.Duration)
	if math.IsNaN(n) || n <= 0 {
		return 0
	}
	if n > MaxSamples {
		return MaxSamples
	}
	return int(n)
}

// Value returns the unclipped waveform at sample index n.
func (p Params) Value(n int) float64 {
	if p.SampleRate == 0 {
		return 0
	}
	t := float64(n) / float64(p.SampleRate)
	return p.A0*math.Sin(2*math.Pi*p.F0*t) + p.A2*math.Sin(2*math.Pi*p.F2()*t)
}

// Clamp limits v to [-ClipLevel, ClipLevel].
func Clamp(v float64) float64 {
	if v > ClipLevel {
		return ClipLevel
	}
	if v < -ClipLevel {
		return -ClipLevel
	}
	return v
}

// Clipped reports whether Clamp changes v.
func Clipped(v float64) bool {
	return v > ClipLevel || v < -ClipLevel
}

// Quantize clamps v and converts it to a signed 16-bit sample,
// truncating toward zero. NaN maps to silence.
func Quantize(v float64) int16 {
	if math.IsNaN(v) {
		return 0
	}
	return int16(Clamp(v) * FullScale)
}

// Tone is a lazy, single-pass iterator over the quantized samples of Params.
type Tone struct {
	p       Params
	n       int
	total   int
	clipped int
}

// NewTone returns an iterator positioned at sample 0.
func NewTone(p Params) *Tone {
	return &Tone{p: p, total: p.NumSamples()}
}

// Next returns the next sample. ok is false once all samples have been produced.
func (t *Tone) Next() (s int16, ok bool) {
	if t.n >= t.total {
		return 0, false
	}
	v := t.p.Value(t.n)
	if Clipped(v) {
		t.clipped++
	}
	t.n++
	return Quantize(v), true
}

// Read fills dst with up to len(dst) samples and returns how many were written.
// It returns 0 when the tone is exhausted.
func (t *Tone) Read(dst []int) int {
	i := 0
	for ; i < len(dst); i++ {
		s, ok := t.Next()
		if !ok {
			break
		}
		dst[i] = int(s)
	}
	return i
}

// Remaining returns the number of samples not yet produced.
func (t *Tone) Remaining() int {
	return t.total - t.n
}

// Clipped returns how many of the samples produced so far hit the clip level.
func (t *Tone) Clipped() int {
	return t.clipped
}
