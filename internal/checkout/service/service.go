// Package service provides the simulated checkout: form validation, cart
// drain and confirmation. No payment is taken and the card number is never
// stored or logged.
package service

import (
	"context"

	"storefront/internal/checkout/ports"
	"storefront/internal/checkout/transport"
	"storefront/internal/events"
	"storefront/platform/apperr"
	"storefront/platform/logger"
	"storefront/platform/sanitize"
	"storefront/platform/validator"

	"github.com/google/uuid"
)

const (
	msgEmptyCart        = "Tu carrito está vacío"
	msgValidationFailed = "validation failed"
	msgThanks           = "¡Gracias por tu compra!"
	msgProcessed        = "Tu pedido ha sido procesado exitosamente."
	submitLabel         = "Confirmar Compra"
)

var formFields = []transport.FormField{
	{Name: "firstName", Label: "Nombre", Type: "text"},
	{Name: "lastName", Label: "Apellido", Type: "text"},
	{Name: "email", Label: "Email", Type: "email"},
	{Name: "address", Label: "Dirección", Type: "text"},
	{Name: "city", Label: "Ciudad", Type: "text"},
	{Name: "postalCode", Label: "Código Postal", Type: "text"},
	{Name: "cardNumber", Label: "Número de Tarjeta", Type: "text", Placeholder: "**** **** **** ****"},
}

// Service handles checkout.
type Service struct {
	cart     ports.CartReader
	bus      events.Bus
	val      *validator.Validator
	recorder ports.Recorder
	log      *logger.Logger
}

// New creates a checkout service. val must have the card number rule
// registered (see RegisterValidations). recorder may be nil.
func New(cart ports.CartReader, bus events.Bus, val *validator.Validator, recorder ports.Recorder, log *logger.Logger) *Service {
	return &Service{
		cart:     cart,
		bus:      bus,
		val:      val,
		recorder: recorder,
		log:      log,
	}
}

// RegisterValidations adds the checkout rules to val.
func RegisterValidations(val *validator.Validator) error {
	return val.RegisterValidation(CardNumberTag, ValidateCardNumber)
}

// Page returns the checkout form with the order summary.
func (s *Service) Page(ctx context.Context) transport.CheckoutPage {
	order := s.cart.Review(ctx)
	return transport.CheckoutPage{
		Lines:     toLineViews(order),
		ItemCount: order.ItemCount,
		Total:     order.Total,
		Empty:     len(order.Lines) == 0,
		Fields:    formFields,
		Submit:    submitLabel,
	}
}

// Confirm validates the form, empties the cart and returns the confirmation.
func (s *Service) Confirm(ctx context.Context, req transport.CheckoutRequest) (transport.Confirmation, error) {
	if len(s.cart.Review(ctx).Lines) == 0 {
		return transport.Confirmation{}, apperr.Conflict(msgEmptyCart).WithOp("checkout.Confirm")
	}

	sanitize.Fields(&req.FirstName, &req.LastName, &req.Email, &req.Address, &req.City, &req.PostalCode)
	if err := s.val.Struct(req); err != nil {
		return transport.Confirmation{}, apperr.Validation(msgValidationFailed).
			WithOp("checkout.Confirm").
			WithDetails(validator.FieldErrors(err))
	}

	order, err := s.cart.Drain(ctx)
	if err != nil {
		return transport.Confirmation{}, err
	}

	confirmation := transport.Confirmation{
		OrderReference: uuid.New(),
		Total:          order.Total,
		ItemCount:      order.ItemCount,
		CardLast4:      lastFour(req.CardNumber),
		Message:        msgThanks,
		Detail:         msgProcessed,
	}

	s.bus.Publish(ctx, events.CheckoutCompleted{
		BaseEvent:      events.NewBaseEvent(),
		OrderReference: confirmation.OrderReference,
		Total:          confirmation.Total,
		ItemCount:      confirmation.ItemCount,
	})
	if s.recorder != nil {
		s.recorder.CheckoutCompleted()
	}

	s.log.WithContext(ctx).Info("checkout completed",
		"orderReference", confirmation.OrderReference.String(),
		"items", confirmation.ItemCount,
		"total", confirmation.Total.StringFixed(2),
	)
	return confirmation, nil
}

func toLineViews(order ports.Order) []transport.OrderLineView {
	lines := make([]transport.OrderLineView, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, transport.OrderLineView{
			ProductID: line.ProductID,
			Title:     line.Title,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Subtotal:  line.Subtotal,
		})
	}
	return lines
}
