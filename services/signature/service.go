package signature

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MarcGrol/userarea/lib/myasync"
	"github.com/MarcGrol/userarea/lib/myerrors"
	"github.com/MarcGrol/userarea/lib/myhttpclient"
	"github.com/MarcGrol/userarea/lib/mylog"
	"github.com/MarcGrol/userarea/lib/mymetrics"
)

// Service talks to the signature platform and tells the front office about removed signatures
type Service struct {
	sender   myhttpclient.HTTPSender
	cfg      Config
	executor myasync.Executor
	metrics  *mymetrics.Metrics
	logger   mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(sender myhttpclient.HTTPSender, cfg Config, executor myasync.Executor, metrics *mymetrics.Metrics, logger mylog.Logger) *Service {
	return &Service{
		sender:   sender,
		cfg:      cfg,
		executor: executor,
		metrics:  metrics,
		logger:   logger,
	}
}

// ModifyApplication reopens the application for editing and returns the url to resume signing
func (s *Service) ModifyApplication(c context.Context, username string, applicationID int64) (string, error) {
	return s.post(c, s.cfg.URL+s.cfg.ModifyEndpoint, username, applicationID)
}

// DeleteApplication withdraws the application from signing; the front office is told in the background
func (s *Service) DeleteApplication(c context.Context, username string, applicationID int64) (string, error) {
	resumeURL, err := s.post(c, s.cfg.URL+s.cfg.DeleteEndpoint, username, applicationID)
	if err != nil {
		return "", err
	}

	s.executor.Go(c, "signature-delete", func(c context.Context) {
		err := s.notifySignatureDeleted(c, username, applicationID)
		if err != nil {
			s.metrics.SignatureDeleteFailure.Inc()
			s.logger.Log(c, username, mylog.SeverityError, "Error notifying front office of deleted signature of application %d: %s", applicationID, err)
		}
	})

	return resumeURL, nil
}

func (s *Service) GetApplications(c context.Context, username string, criteria Criteria) ([]Application, error) {
	status, body, err := s.sender.Send(c, http.MethodGet, s.cfg.URL+s.cfg.ListEndpoint+"?username="+url.QueryEscape(username), nil)
	if err != nil {
		return nil, myerrors.NewExternalServiceError(err)
	}
	if status != http.StatusOK {
		return nil, myerrors.NewExternalServiceError(fmt.Errorf("signature platform list returned %d", status))
	}

	apps := []Application{}
	err = json.Unmarshal(body, &apps)
	if err != nil {
		return nil, myerrors.NewExternalServiceError(fmt.Errorf("error parsing signature applications: %s", err))
	}

	sortApplications(apps, criteria)

	return apps, nil
}

func (s *Service) post(c context.Context, target string, username string, applicationID int64) (string, error) {
	requestBody, err := json.Marshal(applicationRequest{Username: username, ApplicationID: applicationID})
	if err != nil {
		return "", myerrors.NewInternalError(err)
	}

	status, body, err := s.sender.Send(c, http.MethodPost, target, requestBody)
	if err != nil {
		return "", myerrors.NewExternalServiceError(err)
	}
	if status == http.StatusNoContent {
		return "", nil
	}
	if status != http.StatusOK {
		return "", myerrors.NewExternalServiceError(fmt.Errorf("signature platform %s returned %d", target, status))
	}

	resp := resumeResponse{}
	if len(body) > 0 {
		err = json.Unmarshal(body, &resp)
		if err != nil {
			return "", myerrors.NewExternalServiceError(fmt.Errorf("error parsing signature response: %s", err))
		}
	}

	return resp.ResumeURL, nil
}

func (s *Service) notifySignatureDeleted(c context.Context, username string, applicationID int64) error {
	requestBody, err := json.Marshal(applicationRequest{Username: username, ApplicationID: applicationID})
	if err != nil {
		return err
	}
	status, _, err := s.sender.Send(c, http.MethodDelete, s.cfg.FrontOfficeURL+s.cfg.SignatureDeleteEndpoint, requestBody)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("front office returned %d", status)
	}
	return nil
}
