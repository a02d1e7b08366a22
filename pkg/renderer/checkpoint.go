package renderer

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// ErrCheckpointMismatch is returned when a checkpoint does not fit the render
var ErrCheckpointMismatch = errors.New("checkpoint does not match render")

const (
	checkpointMagic   = "PTCK"
	checkpointVersion = 1
)

// checkpointHeader is the fixed-size prefix of the decompressed stream,
// little-endian, followed by width*height*3 float64 sums.
type checkpointHeader struct {
	Magic    [4]byte
	Version  uint32
	Width    uint32
	Height   uint32
	Passes   uint64
	NextPass uint64
}

// Save writes the accumulated sums to path as a zstd-compressed checkpoint.
// The file is replaced atomically.
func (a *Accumulator) Save(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create checkpoint: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := a.encode(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	return nil
}

func (a *Accumulator) encode(w io.Writer) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	buf := bufio.NewWriter(enc)

	header := checkpointHeader{
		Version:  checkpointVersion,
		Width:    uint32(a.width),
		Height:   uint32(a.height),
		Passes:   uint64(a.passes),
		NextPass: uint64(a.nextPass),
	}
	copy(header.Magic[:], checkpointMagic)
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		enc.Close()
		return err
	}

	var word [8]byte
	for _, v := range a.sum {
		binary.LittleEndian.PutUint64(word[:], math.Float64bits(v))
		if _, err := buf.Write(word[:]); err != nil {
			enc.Close()
			return err
		}
	}

	if err := buf.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// LoadAccumulator reads a checkpoint written by Save
func LoadAccumulator(path string) (*Accumulator, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint: %w", err)
	}
	defer file.Close()

	dec, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("read checkpoint %s: %w", path, err)
	}
	defer dec.Close()
	buf := bufio.NewReader(dec)

	var header checkpointHeader
	if err := binary.Read(buf, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read checkpoint %s: %w", path, err)
	}
	if string(header.Magic[:]) != checkpointMagic {
		return nil, fmt.Errorf("read checkpoint %s: not a checkpoint file", path)
	}
	if header.Version != checkpointVersion {
		return nil, fmt.Errorf("read checkpoint %s: unsupported version %d", path, header.Version)
	}
	if header.Width == 0 || header.Height == 0 || uint64(header.Width)*uint64(header.Height) > 1<<28 {
		return nil, fmt.Errorf("read checkpoint %s: invalid size %dx%d", path, header.Width, header.Height)
	}

	a := NewAccumulator(int(header.Width), int(header.Height))
	a.passes = int(header.Passes)
	a.nextPass = int(header.NextPass)

	var word [8]byte
	for i := range a.sum {
		if _, err := io.ReadFull(buf, word[:]); err != nil {
			return nil, fmt.Errorf("read checkpoint %s: %w", path, err)
		}
		a.sum[i] = math.Float64frombits(binary.LittleEndian.Uint64(word[:]))
	}

	return a, nil
}
