package domain

import (
	"fmt"
	"strings"
)

// AccessLevel is ordered: a grant at a higher level satisfies any
// requirement at a lower one.
type AccessLevel int

const (
	LevelNone AccessLevel = iota
	LevelRead
	LevelWrite
	LevelAdmin
)

var levelNames = [...]string{"none", "read", "write", "admin"}

func (l AccessLevel) String() string {
	if l < LevelNone || l > LevelAdmin {
		return fmt.Sprintf("AccessLevel(%d)", int(l))
	}
	return levelNames[l]
}

// ParseAccessLevel accepts the textual form used in catalogs and JSON.
func ParseAccessLevel(s string) (AccessLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if s == name {
			return AccessLevel(i), nil
		}
	}
	return LevelNone, fmt.Errorf("domain: invalid access level %q", s)
}

func (l AccessLevel) MarshalText() ([]byte, error) {
	if l < LevelNone || l > LevelAdmin {
		return nil, fmt.Errorf("domain: invalid access level %d", int(l))
	}
	return []byte(levelNames[l]), nil
}

func (l *AccessLevel) UnmarshalText(b []byte) error {
	parsed, err := ParseAccessLevel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
