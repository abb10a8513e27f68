package splib

// CodeTable holds the bijective symbol↔code mapping of one initialized
// library. Codes are assigned densely in symbol order, so the table is
// stable for the lifetime of the instance that built it.
type CodeTable struct {
	symbols []string
	codes   map[string]PhonemeCode
}

// NewCodeTable builds a table over the given symbols, assigning code i to
// symbols[i]. Duplicate or empty symbols make the mapping ambiguous and are
// rejected.
func NewCodeTable(symbols []string) (*CodeTable, error) {
	codes := make(map[string]PhonemeCode, len(symbols))
	for i, sym := range symbols {
		if sym == "" {
			return nil, NewLibError(ErrCorruptLibrary, "", "codetable").
				WithContext("reason", "empty phoneme symbol").
				WithContext("index", i)
		}
		if _, dup := codes[sym]; dup {
			return nil, NewLibError(ErrCorruptLibrary, "", "codetable").
				WithContext("reason", "duplicate phoneme symbol").
				WithContext("symbol", sym)
		}
		codes[sym] = PhonemeCode(i)
	}
	table := &CodeTable{
		symbols: make([]string, len(symbols)),
		codes:   codes,
	}
	copy(table.symbols, symbols)
	return table, nil
}

// Code resolves a symbol, returning InvalidCode when unsupported.
func (t *CodeTable) Code(symbol string) PhonemeCode {
	if t == nil {
		return InvalidCode
	}
	if code, ok := t.codes[symbol]; ok {
		return code
	}
	return InvalidCode
}

// Symbol is the inverse mapping, returning "" for an out-of-range code.
func (t *CodeTable) Symbol(code PhonemeCode) string {
	if t == nil || !code.Valid(len(t.symbols)) {
		return ""
	}
	return t.symbols[code]
}

// Len returns the number of symbols in the table.
func (t *CodeTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.symbols)
}

// Symbols returns the symbols in code order. The slice is a copy.
func (t *CodeTable) Symbols() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.symbols))
	copy(out, t.symbols)
	return out
}
