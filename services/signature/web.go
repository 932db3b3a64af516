package signature

import (
	"context"
	"fmt"
	"net/http"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/userarea/lib/myauth"
	"github.com/MarcGrol/userarea/lib/mycontext"
	"github.com/MarcGrol/userarea/lib/myerrors"
	"github.com/MarcGrol/userarea/lib/myhttp"
	"github.com/MarcGrol/userarea/lib/mylog"
)

type webService struct {
	service *Service
	logger  mylog.Logger
}

func NewWebService(service *Service) *webService {
	return &webService{
		service: service,
		logger:  mylog.New("signature"),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/signatures/applications", s.listApplications()).Methods("GET")
	return nil
}

func (s *webService) listApplications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		principal, found := myauth.PrincipalFromContext(c)
		if !found {
			errorWriter.WriteError(c, w, 1, myerrors.NewAuthenticationError(fmt.Errorf("missing principal")))
			return
		}

		criteria := Criteria{SortColumn: SortBySignedAt}
		err := formcodec.NewDecoder().Decode(&criteria, r.URL.Query())
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		apps, err := s.service.GetApplications(c, principal.Username, criteria)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, apps)
	}
}
