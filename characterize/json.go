package characterize

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
)

// jsonFactor mirrors one row of a flat on-disk characterization factor
// table: a single (flow, compartment, quantity) -> value mapping.
type jsonFactor struct {
	FlowID      string  `json:"flow_id"`
	Compartment string  `json:"compartment"`
	Quantity    string  `json:"quantity"`
	Value       float64 `json:"value"`
}

// LoadJSON decodes a flat JSON characterization factor table from r into a
// fresh Memory database.
func LoadJSON(r io.Reader) (*Memory, error) {
	var rows []jsonFactor
	dec := json.NewDecoder(r)
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("characterize: decode json: %w", err)
	}
	db := NewMemory()
	for _, row := range rows {
		db.SetCF(row.FlowID, row.Compartment, row.Quantity, row.Value)
	}
	return db, nil
}

// LoadJSONFile opens path and decodes it as a JSON factor table.
func LoadJSONFile(path string) (*Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("characterize: open %q: %w", path, err)
	}
	defer f.Close()
	return LoadJSON(f)
}
