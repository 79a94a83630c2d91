package document

// Node is the closed sum over schema-less document values. It carries no
// type information of its own.
type Node interface {
	isNode()
}

// Null is the document null.
type Null struct{}

// Bool is a document boolean.
type Bool bool

// Number is a document number kept in lexical form.
type Number string

// String is a document string.
type String string

// List is an ordered document list.
type List []Node

// Member is one key/value pair of an object.
type Member struct {
	Value Node
	Key   string
}

// Object is an ordered key to value mapping.
type Object []Member

func (Null) isNode()   {}
func (Bool) isNode()   {}
func (Number) isNode() {}
func (String) isNode() {}
func (List) isNode()   {}
func (Object) isNode() {}

// Get finds the first member with the given key.
func (o Object) Get(key string) (Node, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Kind names the node's shape for diagnostics.
func Kind(n Node) string {
	switch n.(type) {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case List:
		return "list"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}
