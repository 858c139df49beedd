package dto

// Límites de los listados paginados (catálogo, proyectos, clientes).
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Page ventana limit/offset pedida por el cliente.
type Page struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Normalize aplica el límite por defecto, el tope MaxPageLimit y un offset no negativo.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// FetchLimit es lo que se pide al repositorio: una fila extra indica que hay otra página.
func (p Page) FetchLimit() int {
	return p.Limit + 1
}

// PageInfo metadatos de la página devuelta.
type PageInfo struct {
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	HasMore    bool `json:"hasMore"`
	NextOffset *int `json:"nextOffset,omitempty"`
}

// Paginated listado con su página.
type Paginated[T any] struct {
	Items []T      `json:"items"`
	Page  PageInfo `json:"page"`
}

// NewPaginated recorta items (leídos con FetchLimit) a la página pedida.
func NewPaginated[T any](items []T, p Page) Paginated[T] {
	info := PageInfo{Limit: p.Limit, Offset: p.Offset}
	if len(items) > p.Limit {
		items = items[:p.Limit]
		next := p.Offset + p.Limit
		info.HasMore, info.NextOffset = true, &next
	}
	if items == nil {
		items = []T{}
	}
	return Paginated[T]{Items: items, Page: info}
}

// ErrorResponse cuerpo de error HTTP: código estable para el front y mensaje legible.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
