package render

import (
	"fmt"
	"io"

	"github.com/earlysvahn/ollamaq/internal/ollama"
)

const (
	defaultMarker = "→"
	noMarker      = "  "
)

// Catalog prints the models as a 1-based list, marking defaultName.
func Catalog(w io.Writer, models []ollama.ModelInfo, defaultName string) {
	st := NewStyles(w)
	fmt.Fprintf(w, "\n%s\n", st.Title.Render("Available models:"))
	for i, m := range models {
		prefix, name := noMarker, m.Name
		if m.Name == defaultName {
			prefix = st.Marker.Render(defaultMarker) + " "
			name = st.Default.Render(m.Name)
		}
		fmt.Fprintf(w, "%s%d. %s (%s)\n", prefix, i+1, name, FormatSize(m.Size))
	}
}
