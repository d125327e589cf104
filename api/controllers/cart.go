package controllers

import (
	"net/http"

	"github.com/packlane/storefront/api/responses"
	"github.com/packlane/storefront/api/validators"
	"github.com/packlane/storefront/internal/catalog"
	"github.com/packlane/storefront/internal/session"
	pkgerrors "github.com/packlane/storefront/pkg/errors"
	"github.com/packlane/storefront/pkg/logger"
)

type addCartItemRequest struct {
	ProductID int `json:"product_id" validate:"required,min=1"`
	Quantity  int `json:"quantity" validate:"min=0"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartFetch returns the session's cart lines and derived totals.
func CartFetch(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartState(sess.Cart))
	}
}

// CartAddItem resolves the product against the catalog and folds it into the
// cart. A quantity above one repeats the add, the same way the detail screen's
// quantity picker does.
func CartAddItem(mgr *session.Manager, src catalog.Source, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if src == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		sess, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Quantity == 0 {
			payload.Quantity = 1
		}

		product, err := src.GetProduct(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		for i := 0; i < payload.Quantity; i++ {
			sess.Cart.Add(product)
		}

		if logg != nil {
			ctx := logg.WithSessionID(r.Context(), sess.ID.String())
			ctx = logg.WithProductID(ctx, product.ID)
			logg.Info(ctx, "cart.item_added")
		}

		responses.WriteSuccess(w, newCartState(sess.Cart))
	}
}

// CartUpdateItem sets the quantity for one line. Zero and below removes the
// line; an unknown product id leaves the cart untouched.
func CartUpdateItem(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := productIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess.Cart.UpdateQuantity(productID, payload.Quantity)
		responses.WriteSuccess(w, newCartState(sess.Cart))
	}
}

// CartRemoveItem drops one line. Removing an absent product succeeds.
func CartRemoveItem(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := productIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess.Cart.Remove(productID)
		responses.WriteSuccess(w, newCartState(sess.Cart))
	}
}

// CartClear empties the cart in one operation.
func CartClear(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess.Cart.Clear()
		responses.WriteSuccess(w, newCartState(sess.Cart))
	}
}
