package shoppingcart

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

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
		logger:  mylog.New("shoppingcart"),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/shoppingcart/applications", s.getApplications()).Methods("GET")
	router.HandleFunc("/api/shoppingcart/applications/{applicationId}", s.modifyApplication()).Methods("DELETE")
	router.HandleFunc("/api/shoppingcart/applications/{applicationId}", s.syncApplication()).Methods("PUT")
	return nil
}

func principalOf(c context.Context) (myauth.Principal, error) {
	principal, found := myauth.PrincipalFromContext(c)
	if !found {
		return myauth.Principal{}, myerrors.NewAuthenticationError(fmt.Errorf("missing principal"))
	}
	return principal, nil
}

func applicationIDOf(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["applicationId"], 10, 64)
	if err != nil {
		return 0, myerrors.NewInvalidInputError(fmt.Errorf("invalid applicationId: %s", err))
	}
	return id, nil
}

func (s *webService) getApplications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		principal, err := principalOf(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		criteria := Criteria{SortColumn: SortByNumber, Ascending: true}
		err = formcodec.NewDecoder().Decode(&criteria, r.URL.Query())
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		search, err := s.service.GetApplications(c, principal.Username, criteria, principal.Roles)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, search)
	}
}

func (s *webService) modifyApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		principal, err := principalOf(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		applicationID, err := applicationIDOf(r)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		resumeURL, err := s.service.ModifyApplication(c, principal.Username, applicationID,
			myhttp.BoolQueryParam(r, "applicationDeleted"), myhttp.BoolQueryParam(r, "signatureDeleted"))
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, modifyResponse{ResumeURL: resumeURL})
	}
}

func (s *webService) syncApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		principal, err := principalOf(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		applicationID, err := applicationIDOf(r)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		err = s.service.SyncApplication(c, principal.Username, applicationID)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: fmt.Sprintf("Shopping cart updated for application %d", applicationID),
		})
	}
}
