package candid

import "strconv"

// Label identifies a record field or variant case. On the wire Candid
// identifies fields only by a 32-bit id; a declared name is kept alongside
// its hash so both forms can be rendered.
type Label struct {
	Name string // declared name, empty when only the id is known
	ID   uint32 // Hash(Name), or the literal numeric label
}

// NameLabel builds a label from a declared field name.
func NameLabel(name string) Label {
	return Label{Name: name, ID: Hash(name)}
}

// IDLabel builds a label from a bare numeric id (a tuple index or a
// structural hash with no name available).
func IDLabel(id uint32) Label {
	return Label{ID: id}
}

// String renders the declared name when available, the decimal id otherwise.
func (l Label) String() string {
	if l.Name != "" {
		return l.Name
	}
	return strconv.FormatUint(uint64(l.ID), 10)
}

// Hash computes the Candid field-name hash:
//
//	hash(name) = ( Σ name[i] * 223^(len-1-i) ) mod 2^32
func Hash(name string) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		h = h*223 + uint32(name[i])
	}
	return h
}
