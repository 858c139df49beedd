// Package tags detecta conflictos de tags de proyecto entre specs.
//
// Un tag (ej. "F-12") es un identificador humano de un ítem dentro de un proyecto.
// Si varios specs comparten tag pero apuntan a productos distintos, todos quedan
// marcados en conflicto. La comparación de tags es exacta (sensible a mayúsculas
// y espacios).
package tags

// TaggedSpec es la proyección mínima de un spec necesaria para detectar conflictos.
type TaggedSpec struct {
	ID        string
	ProductID string
}

// Detect devuelve si el conjunto de specs de un mismo tag está en conflicto
// y cuántos productos distintos referencia.
func Detect(specs []TaggedSpec) (conflict bool, distinctProducts int) {
	seen := make(map[string]struct{}, len(specs))
	for _, s := range specs {
		seen[s.ProductID] = struct{}{}
	}
	return len(seen) > 1, len(seen)
}

// Affected devuelve los tags a recalcular tras cambiar el tag de un spec de before a after.
// Cadenas vacías se descartan; si no cambió, se devuelve solo el actual.
func Affected(before, after string) []string {
	out := make([]string, 0, 2)
	if after != "" {
		out = append(out, after)
	}
	if before != "" && before != after {
		out = append(out, before)
	}
	return out
}
