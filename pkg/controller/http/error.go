package http

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modwatch-lab/tattler/pkg/domain/model/errs"
	"github.com/modwatch-lab/tattler/pkg/utils/logging"
)

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.From(r.Context())

	switch {
	case goerr.HasTag(err, errs.TagInvalidRequest), goerr.HasTag(err, errs.TagFatalEvent):
		logger.Warn("Bad Request", logging.ErrAttr(err))
		http.Error(w, err.Error(), http.StatusBadRequest)

	case goerr.HasTag(err, errs.TagConfig):
		logger.Error("Configuration Error", logging.ErrAttr(err))
		http.Error(w, err.Error(), http.StatusServiceUnavailable)

	case goerr.HasTag(err, errs.TagProvider):
		logger.Error("Provider Error", logging.ErrAttr(err))
		http.Error(w, err.Error(), http.StatusBadGateway)

	default:
		errs.Handle(r.Context(), err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
