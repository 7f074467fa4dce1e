// Package loader reads and writes Javelin program images: CBOR-encoded
// snapshots of a lifted program (classes, methods, blocks, statements)
// produced by an external frontend.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"fortio.org/safecast"
	"github.com/fxamacker/cbor/v2"
	"github.com/tliron/commonlog"

	"github.com/javelin-vm/javelin/bytecode"
)

var log = commonlog.GetLogger("javelin.loader")

const (
	imageMagic   = "JVLN"
	imageVersion = uint32(1)
)

var (
	ErrInvalidMagic    = errors.New("invalid magic number: expected JVLN")
	ErrVersionMismatch = errors.New("image version mismatch")
	ErrCorruptImage    = errors.New("corrupt image data")
)

// cborEncMode uses canonical mode for deterministic encoding.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("loader: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// imageFile is the serialized image layout.
type imageFile struct {
	Magic       string            `cbor:"magic"`
	Version     uint32            `cbor:"version"`
	Entry       entryPoint        `cbor:"entry"`
	MethodCount uint64            `cbor:"method_count"`
	Classes     []*bytecode.Class `cbor:"classes"`
}

type entryPoint struct {
	Class string `cbor:"class"`
	Sig   string `cbor:"sig"`
}

// WriteImage serializes a program to w.
func WriteImage(w io.Writer, prog *bytecode.Program) error {
	img := imageFile{
		Magic:   imageMagic,
		Version: imageVersion,
		Entry:   entryPoint{Class: prog.Entry.Class, Sig: prog.Entry.Sig},
	}
	count, err := safecast.Conv[uint64](prog.NumMethods())
	if err != nil {
		return fmt.Errorf("loader: method count: %w", err)
	}
	img.MethodCount = count
	for _, c := range prog.Classes() {
		img.Classes = append(img.Classes, c)
	}
	data, err := cborEncMode.Marshal(&img)
	if err != nil {
		return fmt.Errorf("loader: encode image: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("loader: write image: %w", err)
	}
	return nil
}

// ReadImage deserializes a program image from r.
func ReadImage(r io.Reader) (*bytecode.Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("loader: read image: %w", err)
	}
	var img imageFile
	if err := cbor.Unmarshal(data, &img); err != nil {
		return nil, fmt.Errorf("loader: decode image: %w", err)
	}
	if img.Magic != imageMagic {
		return nil, fmt.Errorf("%w, got %q", ErrInvalidMagic, img.Magic)
	}
	if img.Version != imageVersion {
		return nil, fmt.Errorf("%w: image v%d, loader v%d", ErrVersionMismatch, img.Version, imageVersion)
	}

	prog := bytecode.NewProgram()
	prog.Entry = bytecode.MethodKey{Class: img.Entry.Class, Sig: img.Entry.Sig}
	for _, c := range img.Classes {
		prog.AddClass(c)
	}

	declared, err := safecast.Conv[int](img.MethodCount)
	if err != nil {
		return nil, fmt.Errorf("loader: method count: %w", err)
	}
	if declared != prog.NumMethods() {
		return nil, fmt.Errorf("%w: %d methods declared, %d loaded", ErrCorruptImage, declared, prog.NumMethods())
	}

	log.Infof("loaded image: %d classes, %d methods", len(img.Classes), prog.NumMethods())
	return prog, nil
}

// LoadImage reads a program image from disk.
func LoadImage(path string) (*bytecode.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: cannot open %s: %w", path, err)
	}
	defer f.Close()
	return ReadImage(f)
}

// SaveImage writes a program image to disk.
func SaveImage(path string, prog *bytecode.Program) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("loader: cannot create %s: %w", path, err)
	}
	defer f.Close()
	return WriteImage(f, prog)
}
