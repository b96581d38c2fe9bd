package cache

import "time"

// Keyer builds cache keys. Keys from the default keyer look like
// "unit:<sha256>" or "graph:<sha256>".
type Keyer interface {
	// UnitKey keys the generated content of one unit of a symbol file.
	UnitKey(sourceHash string, opts UnitKeyOpts) string

	// GraphKey keys a rendered symbol graph.
	GraphKey(sourceHash string, opts GraphKeyOpts) string
}

// UnitKeyOpts are the inputs besides the symbol file that change a unit's
// output.
type UnitKeyOpts struct {
	Path      string `json:"path"`
	Language  string `json:"language"`
	Generator string `json:"generator"` // symwriter version
	Unbounded bool   `json:"unbounded,omitempty"`
	Header    string `json:"header,omitempty"` // resolved file header, "" when omitted
}

// GraphKeyOpts are the inputs besides the symbol file that change a graph
// rendering.
type GraphKeyOpts struct {
	Format    string `json:"format"`
	Detailed  bool   `json:"detailed,omitempty"`
	Generator string `json:"generator"` // symwriter version
}

// DefaultKeyer hashes every input into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() *DefaultKeyer { return &DefaultKeyer{} }

// UnitKey implements Keyer.
func (DefaultKeyer) UnitKey(sourceHash string, opts UnitKeyOpts) string {
	return hashKey("unit", sourceHash, opts)
}

// GraphKey implements Keyer.
func (DefaultKeyer) GraphKey(sourceHash string, opts GraphKeyOpts) string {
	return hashKey("graph", sourceHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)

// Entry lifetimes.
const (
	TTLUnit  = 7 * 24 * time.Hour
	TTLGraph = 7 * 24 * time.Hour
)
