package ontology

import (
	"encoding/json"
	"io"
)

// WriteJSON writes the ontology as JSON to w, following the same
// single pretty-flag shape as taxonomy.WriteJSON so both output stages
// of the CLI share one convention instead of each parser stage growing
// its own pair of pretty/compact variants.
func WriteJSON(w io.Writer, ont *Ontology, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(ont)
}
