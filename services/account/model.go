package account

// Account is a user of the user area; delegate accounts point at the main account they act for
type Account struct {
	Username       string
	ParentUsername string
}

func (a Account) MainAccount() string {
	if a.ParentUsername != "" {
		return a.ParentUsername
	}
	return a.Username
}
