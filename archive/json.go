package archive

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
)

// jsonFlow, jsonExchange and jsonProcess mirror the on-disk archive
// document shape: a flat list of processes, each with a flat list of
// exchanges naming their flow inline.
type jsonFlow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Compartment string `json:"compartment"`
}

type jsonExchange struct {
	Flow        jsonFlow `json:"flow"`
	Direction   string   `json:"direction"`
	Value       *float64 `json:"value"`
	Termination string   `json:"termination"`
	Reference   bool     `json:"reference"`
}

type jsonProcess struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Exchanges []jsonExchange `json:"exchanges"`
}

type jsonDocument struct {
	Processes []jsonProcess `json:"processes"`
}

// LoadJSON decodes a JSON archive document from r into a fresh Memory archive.
func LoadJSON(r io.Reader) (*Memory, error) {
	var doc jsonDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("archive: decode json: %w", err)
	}

	mem := NewMemory()
	for _, jp := range doc.Processes {
		exchanges := make([]Exchange, 0, len(jp.Exchanges))
		for _, je := range jp.Exchanges {
			exchanges = append(exchanges, Exchange{
				Flow: Flow{
					ID:          je.Flow.ID,
					Name:        je.Flow.Name,
					Unit:        je.Flow.Unit,
					Compartment: je.Flow.Compartment,
				},
				Direction:   Direction(je.Direction),
				Value:       je.Value,
				Termination: je.Termination,
				Reference:   je.Reference,
			})
		}
		if err := mem.AddProcess(NewProcess(jp.ID, jp.Name, exchanges)); err != nil {
			return nil, fmt.Errorf("archive: process %q: %w", jp.ID, err)
		}
	}
	return mem, nil
}

// LoadJSONFile opens path and decodes it as a JSON archive document.
func LoadJSONFile(path string) (*Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("archive: open %q: %w", path, err)
	}
	defer f.Close()
	return LoadJSON(f)
}
