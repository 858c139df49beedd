package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/atelier-api/internal/domain/entity"
)

// ErrInvalidOverride agrupa errores de validación de overrides.
var ErrInvalidOverride = errors.New("override inválido")

// NormalizeOverride aplica valores por defecto y valida un override antes de persistirlo.
// Availability vacío pasa a "default". Precios y markup no pueden ser negativos.
func NormalizeOverride(o *entity.TenantProductOverride) error {
	if o == nil {
		return fmt.Errorf("%w: override nulo", ErrInvalidOverride)
	}
	if o.TenantID == "" || o.ProductID == "" {
		return fmt.Errorf("%w: tenant y producto son obligatorios", ErrInvalidOverride)
	}
	if o.Availability == "" {
		o.Availability = entity.AvailabilityDefault
	}
	if !entity.ValidAvailability(o.Availability) {
		return fmt.Errorf("%w: availability %q no permitido", ErrInvalidOverride, o.Availability)
	}
	var errs []error
	for name, v := range map[string]*decimal.Decimal{
		"cost_price":     o.CostPrice,
		"sell_price":     o.SellPrice,
		"markup_percent": o.MarkupPercent,
	} {
		if v != nil && v.IsNegative() {
			errs = append(errs, fmt.Errorf("%w: %s no puede ser negativo", ErrInvalidOverride, name))
		}
	}
	return errors.Join(errs...)
}
