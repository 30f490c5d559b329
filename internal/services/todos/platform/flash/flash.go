// Package flash provides one-time notices carried in the session across a
// redirect.
package flash

import (
	"fmt"
	"strings"
)

// SessionKey is the session value holding the pending notice.
const SessionKey = "flash"

// Kind classifies flash notice presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notice stores one flash message reference.
type Notice struct {
	Kind Kind   `json:"kind"`
	Key  string `json:"key"`
}

// State is the session surface flash needs.
type State interface {
	Load(key string, dst any) (bool, error)
	Store(key string, value any) error
	Delete(key string)
}

// NoticeSuccess creates a success notice for the provided localization key.
func NoticeSuccess(key string) Notice {
	return Notice{Kind: KindSuccess, Key: key}
}

// NoticeError creates an error notice for the provided localization key.
func NoticeError(key string) Notice {
	return Notice{Kind: KindError, Key: key}
}

// Write stores notice for the next page render, replacing any pending one.
func Write(state State, notice Notice) error {
	if state == nil {
		return fmt.Errorf("flash state is required")
	}
	normalized, ok := normalizeNotice(notice)
	if !ok {
		return fmt.Errorf("invalid flash notice %+v", notice)
	}
	return state.Store(SessionKey, normalized)
}

// ReadAndClear returns the pending notice and removes it.
func ReadAndClear(state State) (Notice, bool) {
	if state == nil {
		return Notice{}, false
	}
	var notice Notice
	found, err := state.Load(SessionKey, &notice)
	if !found {
		return Notice{}, false
	}
	state.Delete(SessionKey)
	if err != nil {
		return Notice{}, false
	}
	return normalizeNotice(notice)
}

func normalizeNotice(notice Notice) (Notice, bool) {
	notice.Key = strings.TrimSpace(notice.Key)
	if notice.Key == "" {
		return Notice{}, false
	}
	notice.Kind = Kind(strings.ToLower(strings.TrimSpace(string(notice.Kind))))
	switch notice.Kind {
	case KindSuccess, KindInfo, KindWarning, KindError:
		return notice, true
	default:
		return Notice{}, false
	}
}
