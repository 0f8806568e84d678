package compression

// Table maps codes to patterns for the decompressor. Codes are small and
// contiguous, so it's a plain slice indexed by code.
type Table struct {
	// entries[i] is the pattern for code i. The end-of-stream marker's slot is
	// always nil.
	entries [][]byte
}

// NewTable creates a table seeded with the single-byte patterns for 0 through
// 127. Every call returns an independent instance.
func NewTable() *Table {
	table := &Table{
		entries: make([][]byte, FirstDynamicCode, TotalCodes),
	}
	for i := 0; i < SeedSymbols; i++ {
		table.entries[i] = []byte{byte(i)}
	}
	return table
}

// Get returns the pattern for `code`. The boolean is false if the code hasn't
// been defined yet, or is the end-of-stream marker.
//
// The returned slice must not be modified.
func (table *Table) Get(code Code) ([]byte, bool) {
	if int(code) >= len(table.entries) {
		return nil, false
	}
	pattern := table.entries[code]
	return pattern, pattern != nil
}

// Add defines `code` as `pattern`. Codes must be added in order with no gaps,
// so `code` must be exactly the next undefined code. Add returns false and does
// nothing if it isn't, if the pattern is empty, or if the table is full.
func (table *Table) Add(code Code, pattern []byte) bool {
	if len(pattern) == 0 || table.Full() || int(code) != len(table.entries) {
		return false
	}
	table.entries = append(table.entries, pattern)
	return true
}

// NextCode gives the code the next call to [Table.Add] must use. The boolean is
// false if the table is full.
func (table *Table) NextCode() (Code, bool) {
	if table.Full() {
		return 0, false
	}
	return Code(len(table.entries)), true
}

// Len gives the number of patterns in the table. The end-of-stream marker isn't
// counted.
func (table *Table) Len() int {
	return len(table.entries) - 1
}

// Full returns true if every code has been defined.
func (table *Table) Full() bool {
	return len(table.entries) >= TotalCodes
}
