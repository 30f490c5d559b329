package flash

import (
	"encoding/json"
	"testing"
)

type mapState map[string]json.RawMessage

func (m mapState) Load(key string, dst any) (bool, error) {
	raw, ok := m[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m mapState) Store(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m[key] = raw
	return nil
}

func (m mapState) Delete(key string) {
	delete(m, key)
}

func TestWriteThenReadAndClear(t *testing.T) {
	t.Parallel()

	state := mapState{}
	if err := Write(state, NoticeSuccess(" web.todos.notice.list_created ")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	notice, ok := ReadAndClear(state)
	if !ok {
		t.Fatal("expected notice")
	}
	if notice.Kind != KindSuccess || notice.Key != "web.todos.notice.list_created" {
		t.Fatalf("notice = %+v", notice)
	}
	if _, ok := ReadAndClear(state); ok {
		t.Fatal("notice should be cleared after read")
	}
}

func TestWriteRejectsInvalidNotices(t *testing.T) {
	t.Parallel()

	state := mapState{}
	if err := Write(state, Notice{Kind: KindError}); err == nil {
		t.Fatal("expected error for blank key")
	}
	if err := Write(state, Notice{Kind: "loud", Key: "k"}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if err := Write(nil, NoticeError("k")); err == nil {
		t.Fatal("expected error for nil state")
	}
}

func TestReadAndClearDropsCorruptNotice(t *testing.T) {
	t.Parallel()

	state := mapState{SessionKey: json.RawMessage(`"garbage"`)}
	if _, ok := ReadAndClear(state); ok {
		t.Fatal("corrupt notice should not be returned")
	}
	if _, ok := state[SessionKey]; ok {
		t.Fatal("corrupt notice should be cleared")
	}
}

func TestLatestNoticeWins(t *testing.T) {
	t.Parallel()

	state := mapState{}
	_ = Write(state, NoticeSuccess("first"))
	_ = Write(state, NoticeError("second"))
	notice, _ := ReadAndClear(state)
	if notice.Key != "second" || notice.Kind != KindError {
		t.Fatalf("notice = %+v, want second error", notice)
	}
}
