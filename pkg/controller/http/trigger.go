package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modwatch-lab/tattler/pkg/domain/model/errs"
	"github.com/modwatch-lab/tattler/pkg/domain/model/event"
)

func decodeEvent(r *http.Request, out any) error {
	if ct := r.Header.Get("Content-Type"); ct != "application/json" {
		return goerr.New("invalid content type",
			goerr.T(errs.TagInvalidRequest), goerr.V("content-type", ct))
	}
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode trigger event",
			goerr.T(errs.TagInvalidRequest))
	}
	return nil
}

func modActionHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev event.ModAction
		if err := decodeEvent(r, &ev); err != nil {
			handleError(w, r, err)
			return
		}
		if err := uc.HandleModAction(r.Context(), &ev); err != nil {
			handleError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func postHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev event.PostSubmit
		if err := decodeEvent(r, &ev); err != nil {
			handleError(w, r, err)
			return
		}
		if err := uc.HandlePost(r.Context(), &ev); err != nil {
			handleError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func commentHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev event.CommentSubmit
		if err := decodeEvent(r, &ev); err != nil {
			handleError(w, r, err)
			return
		}
		if err := uc.HandleComment(r.Context(), &ev); err != nil {
			handleError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func lifecycleHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev event.Lifecycle
		if err := decodeEvent(r, &ev); err != nil {
			handleError(w, r, err)
			return
		}
		if err := uc.HandleLifecycle(r.Context(), &ev); err != nil {
			handleError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
