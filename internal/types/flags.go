package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFlag is returned for unknown or repeated flag letters.
var ErrInvalidFlag = errors.New("invalid regular expression flag")

// Flags is a bitmask of regular expression literal flags.
// The zero value corresponds to /pattern/ with no flags.
type Flags uint16

const (
	// FlagHasIndices is the "d" flag.
	FlagHasIndices Flags = 1 << iota
	// FlagGlobal is the "g" flag.
	FlagGlobal
	// FlagIgnoreCase is the "i" flag.
	FlagIgnoreCase
	// FlagMultiline is the "m" flag: "^" and "$" match at line boundaries.
	FlagMultiline
	// FlagDotAll is the "s" flag: "." matches line terminators.
	FlagDotAll
	// FlagUnicode is the "u" flag.
	FlagUnicode
	// FlagUnicodeSets is the "v" flag.
	FlagUnicodeSets
	// FlagSticky is the "y" flag.
	FlagSticky
)

var flagTable = []struct {
	flag   Flags
	letter byte
	name   string
}{
	{FlagHasIndices, 'd', "hasIndices"},
	{FlagGlobal, 'g', "global"},
	{FlagIgnoreCase, 'i', "ignoreCase"},
	{FlagMultiline, 'm', "multiline"},
	{FlagDotAll, 's', "dotAll"},
	{FlagUnicode, 'u', "unicode"},
	{FlagUnicodeSets, 'v', "unicodeSets"},
	{FlagSticky, 'y', "sticky"},
}

// ParseFlags converts flag letters ("gim") to Flags.
func ParseFlags(s string) (Flags, error) {
	var f Flags
	for i := 0; i < len(s); i++ {
		bit, ok := flagForLetter(s[i])
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFlag, s[i])
		}
		if f&bit != 0 {
			return 0, fmt.Errorf("%w: %q repeated", ErrInvalidFlag, s[i])
		}
		f |= bit
	}
	if f.Has(FlagUnicode) && f.Has(FlagUnicodeSets) {
		return 0, fmt.Errorf("%w: u and v are mutually exclusive", ErrInvalidFlag)
	}
	return f, nil
}

func flagForLetter(c byte) (Flags, bool) {
	for _, e := range flagTable {
		if e.letter == c {
			return e.flag, true
		}
	}
	return 0, false
}

// Has reports whether all bits of other are set.
func (f Flags) Has(other Flags) bool {
	return f&other == other
}

// EitherUnicode reports whether u or v mode is active.
func (f Flags) EitherUnicode() bool {
	return f&(FlagUnicode|FlagUnicodeSets) != 0
}

// String returns the flag letters in canonical order.
func (f Flags) String() string {
	var b strings.Builder
	for _, e := range flagTable {
		if f&e.flag != 0 {
			b.WriteByte(e.letter)
		}
	}
	return b.String()
}

// Names returns the long names of the set flags in canonical order.
func (f Flags) Names() []string {
	var names []string
	for _, e := range flagTable {
		if f&e.flag != 0 {
			names = append(names, e.name)
		}
	}
	return names
}

// MarshalText encodes flags as their letters.
func (f Flags) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes flag letters.
func (f *Flags) UnmarshalText(text []byte) error {
	parsed, err := ParseFlags(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
