package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/atelier-api/internal/application/billing"
	"github.com/jhoicas/atelier-api/internal/application/dto"
)

// HeaderStripeSignature header con la firma HMAC del webhook.
const HeaderStripeSignature = "Stripe-Signature"

// BillingHandler hitos de cobro y webhook del proveedor de pagos.
type BillingHandler struct {
	milestones *billing.MilestoneUseCase
	webhooks   *billing.WebhookUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(milestones *billing.MilestoneUseCase, webhooks *billing.WebhookUseCase) *BillingHandler {
	return &BillingHandler{milestones: milestones, webhooks: webhooks}
}

// CreateMilestone godoc
// @Summary      Crear hito de cobro
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectId  path  string                      true  "ID del proyecto"
// @Param        body       body  dto.CreateMilestoneRequest  true  "Hito"
// @Success      201  {object}  dto.MilestoneResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/milestones [post]
func (h *BillingHandler) CreateMilestone(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	var in dto.CreateMilestoneRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.milestones.Create(c.UserContext(), tenantID, c.Params("projectId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMilestones godoc
// @Summary      Listar hitos del proyecto por fecha objetivo
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Param        projectId  path  string  true  "ID del proyecto"
// @Success      200  {array}   dto.MilestoneResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/milestones [get]
func (h *BillingHandler) ListMilestones(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	out, err := h.milestones.List(c.UserContext(), tenantID, c.Params("projectId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Iniciar el pago de un hito
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Param        projectId    path  string  true  "ID del proyecto"
// @Param        milestoneId  path  string  true  "ID del hito"
// @Success      200  {object}  dto.PayMilestoneResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/milestones/{milestoneId}/pay [post]
func (h *BillingHandler) Pay(c *fiber.Ctx) error {
	tenantID, ok, err := requireTenant(c)
	if !ok {
		return err
	}
	out, err := h.milestones.Pay(c.UserContext(), tenantID, c.Params("projectId"), c.Params("milestoneId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StripeWebhook godoc
// @Summary      Webhook de Stripe (público, firmado)
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature  header  string  true  "t=<unix>,v1=<hmac>"
// @Success      200  {object}  dto.WebhookAck
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/webhooks/stripe [post]
func (h *BillingHandler) StripeWebhook(c *fiber.Ctx) error {
	payload := append([]byte(nil), c.Body()...)
	if err := h.webhooks.Handle(c.UserContext(), payload, c.Get(HeaderStripeSignature)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.WebhookAck{Received: true})
}
