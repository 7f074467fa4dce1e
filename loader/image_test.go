package loader

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor/v2"

	"github.com/javelin-vm/javelin/bytecode"
)

func sampleProgram() *bytecode.Program {
	prog := bytecode.NewProgram()
	ret := bytecode.ConstOp(0, bytecode.TypeInt)
	prog.AddClass(&bytecode.Class{
		Name:  "com.example.Main",
		Super: "java.lang.Object",
		Methods: []*bytecode.Method{{
			Descriptor: bytecode.MethodDescriptor{
				Class:  "com.example.Main",
				Name:   "main",
				Params: []bytecode.Type{"java.lang.String"},
				Ret:    bytecode.TypeInt,
				Attrs:  []string{bytecode.AttrStatic},
			},
			Blocks: []*bytecode.Block{{
				Statements: []bytecode.Statement{
					{Kind: bytecode.StmtNop},
					{Kind: bytecode.StmtReturn, Value: &ret},
				},
			}},
		}},
	})
	prog.Entry = bytecode.MethodKey{Class: "com.example.Main", Sig: "main(java.lang.String)"}
	return prog
}

func TestImageRoundTrip(t *testing.T) {
	prog := sampleProgram()

	var buf bytes.Buffer
	if err := WriteImage(&buf, prog); err != nil {
		t.Fatalf("WriteImage() error: %v", err)
	}

	loaded, err := ReadImage(&buf)
	if err != nil {
		t.Fatalf("ReadImage() error: %v", err)
	}
	if loaded.Entry != prog.Entry {
		t.Errorf("entry = %s, want %s", loaded.Entry, prog.Entry)
	}
	if loaded.NumMethods() != prog.NumMethods() {
		t.Errorf("methods = %d, want %d", loaded.NumMethods(), prog.NumMethods())
	}

	m, err := loaded.Method(prog.Entry)
	if err != nil {
		t.Fatalf("entry method lost: %v", err)
	}
	if len(m.Blocks) != 1 || len(m.Blocks[0].Statements) != 2 {
		t.Fatal("block structure lost")
	}
	stmt := m.Blocks[0].Statements[1]
	if stmt.Kind != bytecode.StmtReturn || stmt.Value == nil || stmt.Value.Const != 0 {
		t.Error("statement payload lost")
	}
	if !m.Descriptor.IsStatic() {
		t.Error("attributes lost")
	}
}

func TestImageFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.jvln")
	if err := SaveImage(path, sampleProgram()); err != nil {
		t.Fatalf("SaveImage() error: %v", err)
	}
	loaded, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage() error: %v", err)
	}
	if loaded.NumMethods() != 1 {
		t.Errorf("methods = %d, want 1", loaded.NumMethods())
	}
}

func TestImageBadMagic(t *testing.T) {
	img := imageFile{Magic: "NOPE", Version: imageVersion}
	data, err := cborEncMode.Marshal(&img)
	if err != nil {
		t.Fatal(err)
	}
	_, err = ReadImage(bytes.NewReader(data))
	if !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("error = %v, want ErrInvalidMagic", err)
	}
}

func TestImageVersionMismatch(t *testing.T) {
	img := imageFile{Magic: imageMagic, Version: imageVersion + 1}
	data, err := cborEncMode.Marshal(&img)
	if err != nil {
		t.Fatal(err)
	}
	_, err = ReadImage(bytes.NewReader(data))
	if !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("error = %v, want ErrVersionMismatch", err)
	}
}

func TestImageMethodCountMismatch(t *testing.T) {
	prog := sampleProgram()
	var buf bytes.Buffer
	if err := WriteImage(&buf, prog); err != nil {
		t.Fatal(err)
	}

	var img imageFile
	if err := cbor.Unmarshal(buf.Bytes(), &img); err != nil {
		t.Fatal(err)
	}
	img.MethodCount++
	data, err := cborEncMode.Marshal(&img)
	if err != nil {
		t.Fatal(err)
	}
	_, err = ReadImage(bytes.NewReader(data))
	if !errors.Is(err, ErrCorruptImage) {
		t.Fatalf("error = %v, want ErrCorruptImage", err)
	}
}

func TestImageGarbage(t *testing.T) {
	_, err := ReadImage(bytes.NewReader([]byte("not an image at all")))
	if err == nil {
		t.Fatal("garbage input must not decode")
	}
}
