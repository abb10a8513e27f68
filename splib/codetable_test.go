package splib

import (
	"errors"
	"testing"
)

// TestCodeTableRoundTrip tests that symbol→code→symbol is the identity
// over the supported alphabet.
func TestCodeTableRoundTrip(t *testing.T) {
	symbols := []string{"a", "b", "sil", "zh-x"}
	table, err := NewCodeTable(symbols)
	if err != nil {
		t.Fatalf("NewCodeTable() failed: %v", err)
	}

	if table.Len() != len(symbols) {
		t.Fatalf("Len() = %d, want %d", table.Len(), len(symbols))
	}

	for i, sym := range symbols {
		code := table.Code(sym)
		if code != PhonemeCode(i) {
			t.Errorf("Code(%q) = %d, want %d", sym, code, i)
		}
		if got := table.Symbol(code); got != sym {
			t.Errorf("Symbol(Code(%q)) = %q, want %q", sym, got, sym)
		}
	}
}

// TestCodeTableSentinels tests unknown-symbol and invalid-code behavior.
func TestCodeTableSentinels(t *testing.T) {
	table, err := NewCodeTable([]string{"a", "b"})
	if err != nil {
		t.Fatalf("NewCodeTable() failed: %v", err)
	}

	if code := table.Code("zz"); code != InvalidCode {
		t.Errorf("Code(unsupported) = %d, want InvalidCode", code)
	}

	for _, code := range []PhonemeCode{InvalidCode, -2, 2, 100} {
		if sym := table.Symbol(code); sym != "" {
			t.Errorf("Symbol(%d) = %q, want empty", code, sym)
		}
	}
}

// TestCodeTableRejectsAmbiguousSymbols tests duplicate and empty symbols.
func TestCodeTableRejectsAmbiguousSymbols(t *testing.T) {
	tests := []struct {
		name    string
		symbols []string
	}{
		{"duplicate symbol", []string{"a", "b", "a"}},
		{"empty symbol", []string{"a", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCodeTable(tt.symbols); !errors.Is(err, ErrCorruptLibrary) {
				t.Errorf("NewCodeTable(%v) error = %v, want ErrCorruptLibrary", tt.symbols, err)
			}
		})
	}
}

// TestCodeTableSymbolsIsACopy tests that mutating the returned slice does
// not corrupt the table.
func TestCodeTableSymbolsIsACopy(t *testing.T) {
	table, err := NewCodeTable([]string{"a", "b"})
	if err != nil {
		t.Fatalf("NewCodeTable() failed: %v", err)
	}

	out := table.Symbols()
	out[0] = "mutated"

	if got := table.Symbol(0); got != "a" {
		t.Errorf("Symbol(0) after mutating Symbols() = %q, want %q", got, "a")
	}
}

// TestNilCodeTable tests that a nil table behaves as an empty one.
func TestNilCodeTable(t *testing.T) {
	var table *CodeTable
	if table.Len() != 0 {
		t.Errorf("nil table Len() = %d, want 0", table.Len())
	}
	if code := table.Code("a"); code != InvalidCode {
		t.Errorf("nil table Code() = %d, want InvalidCode", code)
	}
	if sym := table.Symbol(0); sym != "" {
		t.Errorf("nil table Symbol() = %q, want empty", sym)
	}
}
