package trace

import (
	"path/filepath"
	"testing"
)

func TestStoreRecordAndQuery(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer s.Close()

	events := []Event{
		{StateID: 1, Kind: KindCall, Addr: "C.main() [block 0, stmt 0]", Detail: map[string]any{"callee": "C.helper()"}},
		{StateID: 2, Kind: KindExit, Addr: "<terminated>", Detail: map[string]any{"exit_code": "0x0[64]"}},
		{StateID: 3, Kind: KindCall, Addr: "C.helper() [block 0, stmt 0]"},
	}
	for _, ev := range events {
		if err := s.Record(ev); err != nil {
			t.Fatalf("Record() error: %v", err)
		}
	}

	all, err := s.Events("")
	if err != nil {
		t.Fatalf("Events() error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("events = %d, want 3", len(all))
	}
	if all[0].StateID != 1 || all[2].StateID != 3 {
		t.Error("events not returned oldest first")
	}

	calls, err := s.Events(KindCall)
	if err != nil {
		t.Fatalf("Events(call) error: %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("call events = %d, want 2", len(calls))
	}
	if calls[0].Detail["callee"] != "C.helper()" {
		t.Errorf("detail = %v, want callee payload", calls[0].Detail)
	}
	if calls[1].Detail != nil {
		t.Error("empty detail must stay nil")
	}
}

func TestStoreOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := s.Record(Event{StateID: 1, Kind: KindBranch, Addr: "a"}); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	// Reopening must find the persisted events.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer s.Close()
	evs, err := s.Events(KindBranch)
	if err != nil {
		t.Fatalf("Events() error: %v", err)
	}
	if len(evs) != 1 {
		t.Errorf("events = %d after reopen, want 1", len(evs))
	}
}
