package signature

type SortColumn string

const (
	SortByNumber    SortColumn = "NUMBER"
	SortByType      SortColumn = "TYPE"
	SortByApplicant SortColumn = "APPLICANT"
	SortBySignedAt  SortColumn = "SIGNEDAT"
)

// Application is an application as known by the signature platform
type Application struct {
	ApplicationID int64  `json:"applicationId"`
	Number        string `json:"number"`
	Type          string `json:"type"`
	Applicant     string `json:"applicant"`
	// formatted as 2006-01-02T15:04:05 followed by ",<locale>"
	SignedAt string `json:"signedAt"`
}

type Criteria struct {
	SortColumn SortColumn `form:"sortColumn"`
	Ascending  bool       `form:"ascending"`
}

type Config struct {
	URL                     string
	ModifyEndpoint          string
	DeleteEndpoint          string
	ListEndpoint            string
	FrontOfficeURL          string
	SignatureDeleteEndpoint string
}

type applicationRequest struct {
	Username      string `json:"username"`
	ApplicationID int64  `json:"applicationId"`
}

type resumeResponse struct {
	ResumeURL string `json:"resumeUrl"`
}
