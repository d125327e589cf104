package controllers

import (
	"net/http"

	"github.com/packlane/storefront/api/responses"
	"github.com/packlane/storefront/api/validators"
	"github.com/packlane/storefront/internal/catalog"
	"github.com/packlane/storefront/internal/session"
	"github.com/packlane/storefront/pkg/enums"
	pkgerrors "github.com/packlane/storefront/pkg/errors"
	"github.com/packlane/storefront/pkg/logger"
)

type navigationEventRequest struct {
	Event     string `json:"event" validate:"required"`
	ProductID int    `json:"product_id" validate:"min=0"`
}

type navigationEventResponse struct {
	Navigation navigationState  `json:"navigation"`
	Product    *catalog.Product `json:"product,omitempty"`
}

// NavigationFetch returns the session's current view and overlay flag.
func NavigationFetch(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newNavigationState(sess.Nav.State()))
	}
}

// NavigationEvent applies one typed trigger to the session's machine.
// Triggers that are invalid for the current view answer STATE_CONFLICT and
// leave the state unchanged.
func NavigationEvent(mgr *session.Manager, src catalog.Source, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload navigationEventRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		event, err := enums.ParseNavEvent(payload.Event)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "unknown navigation event").WithDetails(map[string]any{"event": payload.Event}))
			return
		}

		var product *catalog.Product
		switch event {
		case enums.NavSelectProduct:
			product, err = selectProduct(r, sess, src, payload.ProductID)
		case enums.NavBack:
			err = sess.Nav.Back()
		case enums.NavOpenCart:
			sess.Nav.OpenCart()
		case enums.NavCloseCart:
			sess.Nav.CloseCart()
		case enums.NavBeginCheckout:
			err = sess.Nav.BeginCheckout()
		case enums.NavContinueShopping:
			err = sess.Nav.ContinueShopping()
		case enums.NavHome:
			sess.Nav.Home()
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithSessionID(r.Context(), sess.ID.String())
			ctx = logg.WithView(ctx, sess.Nav.State().View.Kind().String())
			logg.Info(ctx, "navigation.event")
		}

		responses.WriteSuccess(w, navigationEventResponse{
			Navigation: newNavigationState(sess.Nav.State()),
			Product:    product,
		})
	}
}

// selectProduct resolves the product before moving the machine so a dead
// catalog or an unknown id never strands navigation on a detail view with
// nothing to show. Superseded fetches are dropped silently.
func selectProduct(r *http.Request, sess *session.Session, src catalog.Source, productID int) (*catalog.Product, error) {
	if productID < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id required for select-product")
	}

	apply := func(p catalog.Product) (*catalog.Product, error) {
		if err := sess.Nav.SelectProduct(p.ID); err != nil {
			return nil, err
		}
		return &p, nil
	}

	if sess.Detail != nil {
		var selected *catalog.Product
		var selectErr error
		applied, err := sess.Detail.Fetch(r.Context(), productID, func(p catalog.Product) {
			selected, selectErr = apply(p)
		})
		if err != nil {
			return nil, err
		}
		if !applied {
			return nil, nil
		}
		return selected, selectErr
	}

	if src == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable")
	}
	p, err := src.GetProduct(r.Context(), productID)
	if err != nil {
		return nil, err
	}
	return apply(p)
}
