// Package symbols implements the identifier interner shared by the parser
// and the semantic analyzer. Interning the same text twice yields the same
// *Symbol, so symbols are compared with == throughout the compiler.
package symbols

// Symbol is an interned identifier handle.
type Symbol struct {
	name string
}

func (s *Symbol) Name() string { return s.name }

func (s *Symbol) String() string {
	if s == nil {
		return "<nil>"
	}
	return s.name
}

// Table owns the intern pool. The fields below are the distinguished
// symbols the analyzer needs by identity: basic class names, the
// sentinels, and the names of the built-in features. They are interned
// once at construction so that later Intern calls for the same text
// return the very same handles.
type Table struct {
	entries map[string]*Symbol

	// Basic class names.
	Object *Symbol
	IO     *Symbol
	Int    *Symbol
	Str    *Symbol
	Bool   *Symbol

	// Sentinels and keywords.
	SelfType *Symbol // SELF_TYPE
	NoClass  *Symbol // _no_class: parent of Object
	NoType   *Symbol // _no_type: type of the absent expression
	Self     *Symbol // self
	Main     *Symbol
	MainMeth *Symbol // main

	// Built-in method names.
	Abort    *Symbol
	TypeName *Symbol
	Copy     *Symbol
	OutStr   *Symbol
	OutInt   *Symbol
	InStr    *Symbol
	InInt    *Symbol
	Length   *Symbol
	Concat   *Symbol
	Substr   *Symbol

	// Built-in formal and attribute slot names.
	Arg      *Symbol
	Arg2     *Symbol
	Val      *Symbol // _val
	StrField *Symbol // _str_field
	PrimSlot *Symbol // _prim_slot
}

func NewTable() *Table {
	t := &Table{entries: make(map[string]*Symbol)}

	t.Object = t.Intern("Object")
	t.IO = t.Intern("IO")
	t.Int = t.Intern("Int")
	t.Str = t.Intern("String")
	t.Bool = t.Intern("Bool")

	t.SelfType = t.Intern("SELF_TYPE")
	t.NoClass = t.Intern("_no_class")
	t.NoType = t.Intern("_no_type")
	t.Self = t.Intern("self")
	t.Main = t.Intern("Main")
	t.MainMeth = t.Intern("main")

	t.Abort = t.Intern("abort")
	t.TypeName = t.Intern("type_name")
	t.Copy = t.Intern("copy")
	t.OutStr = t.Intern("out_string")
	t.OutInt = t.Intern("out_int")
	t.InStr = t.Intern("in_string")
	t.InInt = t.Intern("in_int")
	t.Length = t.Intern("length")
	t.Concat = t.Intern("concat")
	t.Substr = t.Intern("substr")

	t.Arg = t.Intern("arg")
	t.Arg2 = t.Intern("arg2")
	t.Val = t.Intern("_val")
	t.StrField = t.Intern("_str_field")
	t.PrimSlot = t.Intern("_prim_slot")

	return t
}

// Intern returns the unique handle for text, creating it on first use.
func (t *Table) Intern(text string) *Symbol {
	if s, ok := t.entries[text]; ok {
		return s
	}
	s := &Symbol{name: text}
	t.entries[text] = s
	return s
}

// Len reports how many distinct identifiers have been interned.
func (t *Table) Len() int { return len(t.entries) }
