package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/packlane/storefront/api/responses"
	"github.com/packlane/storefront/api/validators"
	"github.com/packlane/storefront/internal/orders"
	"github.com/packlane/storefront/internal/session"
	"github.com/packlane/storefront/pkg/config"
	"github.com/packlane/storefront/pkg/enums"
	pkgerrors "github.com/packlane/storefront/pkg/errors"
	"github.com/packlane/storefront/pkg/logger"
)

type checkoutRequest struct {
	Customer orders.Customer        `json:"customer" validate:"required"`
	Shipping orders.ShippingAddress `json:"shipping" validate:"required"`
}

type checkoutResponse struct {
	Order      orders.Order    `json:"order"`
	Navigation navigationState `json:"navigation"`
}

// CheckoutComplete freezes the cart into an order and moves the machine to
// the confirmation. Submitting outside the checkout screen is a state
// conflict and assembles nothing.
func CheckoutComplete(mgr *session.Manager, assembler *orders.Assembler, cfg config.CheckoutConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if assembler == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order assembler unavailable"))
			return
		}

		sess, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// Reject before assembling: no order ID is minted and no completion
		// is counted for a submission outside the checkout screen.
		if state := sess.Nav.State(); state.View.Kind() != enums.ViewCheckout {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeStateConflict, "navigation trigger not valid in current view").
				WithDetails(map[string]any{
					"trigger": "complete-order",
					"view":    state.View.Kind().String(),
				}))
			return
		}

		order, err := assembler.Complete(sess.Cart.Snapshot(), payload.Customer, payload.Shipping)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := sess.Nav.CompleteOrder(order); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess.RecordOrder(order)
		if cfg.ClearCart {
			sess.Cart.Clear()
		}

		if logg != nil {
			ctx := logg.WithSessionID(r.Context(), sess.ID.String())
			ctx = logg.WithField(ctx, "order_id", order.ID)
			logg.Info(ctx, "checkout.completed")
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, checkoutResponse{
			Order:      order,
			Navigation: newNavigationState(sess.Nav.State()),
		})
	}
}

// OrderReceipt renders the plain-text receipt for one completed order.
func OrderReceipt(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := sess.Order(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(orders.Receipt(order)))
	}
}
