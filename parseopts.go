package termc

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// Lookup reports which names are callable. *Symbols implements Lookup.
type Lookup interface {
	// IsFunction returns whether name is a user or built-in function.
	IsFunction(name string) bool
}

type resolveopt struct {
	l Lookup
}

// parsectx holds general data for parsing. It is also a ParseOption.
type parsectx struct {
	// funcs, if not nil, decides which identifiers may be called.
	funcs Lookup
}

// ResolveWith tells the parser to reject calls to names that l does not
// know as functions. The error is a KindUndefined diagnostic at the name.
// Without ResolveWith, any name may be called, and unknown functions are
// reported by Eval instead. A nil l restores the default.
func ResolveWith(l Lookup) ParseOption {
	return resolveopt{l}
}

func (o resolveopt) parseOption(p parsectx) parsectx {
	p.funcs = o.l
	return p
}

// ParsingPreset combines several options into one, so that the same options
// can be used for many calls to Parse without rebuilding them.
func ParsingPreset(opts ...ParseOption) ParseOption {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	if o.funcs != nil {
		p.funcs = o.funcs
	}
	return p
}
