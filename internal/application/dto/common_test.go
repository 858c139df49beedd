package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/atelier-api/internal/application/dto"
)

func TestPage_Normalize(t *testing.T) {
	assert.Equal(t, dto.Page{Limit: 20}, dto.Page{}.Normalize())
	assert.Equal(t, dto.Page{Limit: 100, Offset: 40}, dto.Page{Limit: 500, Offset: 40}.Normalize())
	assert.Equal(t, dto.Page{Limit: 5}, dto.Page{Limit: 5, Offset: -3}.Normalize())
}

func TestNewPaginated_FilaExtraIndicaOtraPagina(t *testing.T) {
	p := dto.Page{Limit: 2, Offset: 4}
	out := dto.NewPaginated([]string{"a", "b", "c"}, p)
	assert.Equal(t, []string{"a", "b"}, out.Items)
	assert.True(t, out.Page.HasMore)
	if assert.NotNil(t, out.Page.NextOffset) {
		assert.Equal(t, 6, *out.Page.NextOffset)
	}

	last := dto.NewPaginated([]string{"e"}, p)
	assert.False(t, last.Page.HasMore)
	assert.Nil(t, last.Page.NextOffset)

	empty := dto.NewPaginated[string](nil, p)
	assert.NotNil(t, empty.Items, "se serializa como [] y no null")
}
