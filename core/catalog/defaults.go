package catalog

// builtin is the shipped catalog content. Saved state may extend it but never replace it.
var builtin = map[Kind][]Entry{
	KindVendor: {
		{Name: "vendor1", Code: "1"},
		{Name: "vendor3", Code: "3"},
		{Name: "vendor5", Code: "5"},
		{Name: "vendor2", Code: "2"},
	},
	KindType: {
		{Name: "laptop", Code: "L"},
		{Name: "desktop", Code: "D"},
		{Name: "servidor", Code: "S"},
		{Name: "impressora", Code: "I"},
		{Name: "celular", Code: "C"},
	},
	KindSector: {
		{Name: "ti", Code: "01"},
		{Name: "rh", Code: "02"},
		{Name: "financeiro", Code: "03"},
	},
	KindLocation: {
		{Name: "fabrica", Code: "1"},
		{Name: "escritorio", Code: "2"},
		{Name: "deposito", Code: "4"},
	},
}

// Defaults returns the builtin entries for a kind
func Defaults(kind Kind) []Entry {
	src := builtin[kind]
	result := make([]Entry, len(src))
	for i, e := range src {
		result[i] = Entry{Name: e.Name, Code: e.Code, Builtin: true}
	}
	return result
}

// IsDefault reports whether name is a builtin entry of kind
func IsDefault(kind Kind, name string) bool {
	key := NormalizeName(name)
	for _, e := range builtin[kind] {
		if e.Name == key {
			return true
		}
	}
	return false
}

// NewDefault creates a catalog pre-populated with the builtin entries
func NewDefault(kind Kind) *Catalog {
	c := New(kind)
	for _, e := range Defaults(kind) {
		if err := c.insert(e.Name, e.Code, true); err != nil {
			panic("catalog: invalid builtin entry: " + err.Error())
		}
	}
	return c
}
