package packets

type TokenResponse struct {
	Token string `json:"token"`
}

type DeleteResponse struct {
	Deleted string `json:"deleted"`
}
