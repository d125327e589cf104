package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/packlane/storefront/api/responses"
	"github.com/packlane/storefront/internal/session"
	pkgerrors "github.com/packlane/storefront/pkg/errors"
	"github.com/packlane/storefront/pkg/logger"
)

// SessionCreate issues a fresh session: empty cart, listing view.
func SessionCreate(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mgr == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		sess := mgr.Create()

		if logg != nil {
			logg.Info(logg.WithSessionID(r.Context(), sess.ID.String()), "session.created")
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sessionState{
			SessionID:  sess.ID.String(),
			Navigation: newNavigationState(sess.Nav.State()),
			Cart:       newCartState(sess.Cart),
		})
	}
}

// SessionFetch returns the full session snapshot: navigation plus cart.
func SessionFetch(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sessionState{
			SessionID:  sess.ID.String(),
			Navigation: newNavigationState(sess.Nav.State()),
			Cart:       newCartState(sess.Cart),
		})
	}
}

// SessionDelete tears the session down immediately instead of waiting for
// the idle sweep.
func SessionDelete(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(mgr, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mgr.Delete(sess.ID)
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func sessionFromRequest(mgr *session.Manager, r *http.Request) (*session.Session, error) {
	if mgr == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable")
	}
	raw := chi.URLParam(r, "sessionId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid session id").WithDetails(map[string]any{"session_id": raw})
	}
	return mgr.Get(id)
}
