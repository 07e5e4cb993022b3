package message

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"
	"testing"

	"tableflip.dev/notas/pkg/note"
)

func TestCodecFrames(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	reqs := []Request{
		{ID: "1", Action: ActionGetNotes},
		{ID: "2", Action: ActionSaveNotes, Data: []*note.Note{{ID: "n", Content: "c", Todos: []note.Todo{}}}},
	}
	for _, r := range reqs {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}

	dec := NewDecoder(&buf)
	for i, want := range reqs {
		var got Request
		if err := dec.Decode(&got); err != nil {
			t.Fatalf("decode %d: %v", i, err)
		}
		if got.ID != want.ID || got.Action != want.Action || len(got.Data) != len(want.Data) {
			t.Fatalf("frame %d mismatch: %+v", i, got)
		}
	}
	var extra Request
	if err := dec.Decode(&extra); err != io.EOF {
		t.Fatalf("expected io.EOF at end of stream, got %v", err)
	}
}

func TestDecoderRejectsOversizedFrame(t *testing.T) {
	var header [4]byte
	binary.NativeEndian.PutUint32(header[:], MaxInbound+1)
	dec := NewDecoder(bytes.NewReader(header[:]))
	var r Request
	if err := dec.Decode(&r); err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Fatalf("expected size error, got %v", err)
	}
}

func TestDecoderTruncatedBody(t *testing.T) {
	var header [4]byte
	binary.NativeEndian.PutUint32(header[:], 10)
	dec := NewDecoder(bytes.NewReader(append(header[:], '{')))
	var r Request
	if err := dec.Decode(&r); err == nil || err == io.EOF {
		t.Fatalf("expected truncation error, got %v", err)
	}
}

func TestCaptureRequestRoundTrip(t *testing.T) {
	c := note.Capture{Text: "hello", PageURL: "https://example.com", PageTitle: "Example"}
	req := CaptureRequest(c)
	if req.Action != ActionAddSelectedText {
		t.Fatalf("unexpected action %q", req.Action)
	}
	if req.Capture() != c {
		t.Fatalf("capture mismatch: %+v", req.Capture())
	}
}

func TestPostCloneIsDeep(t *testing.T) {
	p := Post{Type: TypeNotesData, Notes: []*note.Note{{ID: "a", Todos: []note.Todo{{ID: "t"}}}}}
	cp := p.Clone()
	cp.Notes[0].Todos[0].Text = "changed"
	if p.Notes[0].Todos[0].Text != "" {
		t.Fatal("clone shares todos with original")
	}
}
