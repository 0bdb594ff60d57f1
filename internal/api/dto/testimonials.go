package dto

type TestimonialRequest struct {
	Review      string `json:"review"`
	Rating      int    `json:"rating"`
	UserName    string `json:"userName,omitempty"`
	UserEmail   string `json:"userEmail,omitempty"`
	UserAddress string `json:"userAddress,omitempty"`
	UserSocials string `json:"userSocials,omitempty"`
}

func (r TestimonialRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if len(r.Review) < 10 {
		errors["review"] = "Review must have atleast 10 characters"
	}
	if r.Rating < 1 || r.Rating > 5 {
		errors["rating"] = "Rating must be between 1 and 5"
	}

	return errors
}

type LikeRequest struct {
	IsLiked bool `json:"isLiked"`
}

type LikeResponse struct {
	Response
	State bool `json:"state"`
}

// StatsResponse aggregates over all of the owner's testimonials; the average
// is rounded to two decimals and is 0 when there are none.
type StatsResponse struct {
	Response
	TotalTestimonials int     `json:"totalTestimonials"`
	AverageRating     float64 `json:"averageRating"`
}
