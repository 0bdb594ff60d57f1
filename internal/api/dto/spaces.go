package dto

// SpaceUpdateRequest is the full-replace payload for a space. The booleans
// choose which respondent fields the public form collects.
type SpaceUpdateRequest struct {
	Name        string `json:"name"`
	Header      string `json:"header"`
	Description string `json:"description"`
	UserName    bool   `json:"userName"`
	UserEmail   bool   `json:"userEmail"`
	UserAddress bool   `json:"userAddress"`
	UserSocials bool   `json:"userSocials"`
}

func (r SpaceUpdateRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if len(r.Name) < 3 || len(r.Name) > 20 {
		errors["name"] = "Name must be between 3 and 20 characters"
	}
	if len(r.Header) < 5 || len(r.Header) > 50 {
		errors["header"] = "Header must be between 5 and 50 characters"
	}

	return errors
}

type CreateSpaceResponse struct {
	Response
	SpaceID string `json:"spaceId"`
}
