package bank

import "strconv"

// Identifier is a tagged two-mode account lookup key: either a numeric ID or
// an exact account name. The choice is made once at the boundary by
// ParseIdentifier rather than re-sniffed inside every store query.
type Identifier struct {
	byID bool
	id   int
	name string
}

// ByID builds an identifier that resolves by numeric ID.
func ByID(id int) Identifier { return Identifier{byID: true, id: id} }

// ByName builds an identifier that resolves by exact account name.
func ByName(name string) Identifier { return Identifier{name: name} }

// ParseIdentifier interprets raw caller input: a decimal numeric string is an
// ID, anything else is an account name. A blank string yields the zero
// Identifier, which callers must treat as "no lookup performed".
func ParseIdentifier(raw string) Identifier {
	if raw == "" {
		return Identifier{}
	}
	if id, err := strconv.Atoi(raw); err == nil {
		return ByID(id)
	}
	return ByName(raw)
}

// IsZero reports whether the identifier carries no lookup key at all.
func (i Identifier) IsZero() bool { return !i.byID && i.name == "" }

// ID returns the numeric key and whether this identifier resolves by ID.
func (i Identifier) ID() (int, bool) { return i.id, i.byID }

// Name returns the name key and whether this identifier resolves by name.
func (i Identifier) Name() (string, bool) { return i.name, !i.byID && i.name != "" }

// Matches reports whether the identifier resolves to the given account.
func (i Identifier) Matches(a Account) bool {
	if i.byID {
		return a.ID == i.id
	}
	return i.name != "" && a.Name == i.name
}

// String renders the identifier for logs and error messages.
func (i Identifier) String() string {
	if i.byID {
		return strconv.Itoa(i.id)
	}
	return i.name
}
