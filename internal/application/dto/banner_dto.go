package dto

// BannerResponse banner de portada.
type BannerResponse struct {
	ID       string        `json:"id"`
	Title    string        `json:"title,omitempty"`
	ImageURL string        `json:"image_url,omitempty"`
	Image    *ImagePayload `json:"image,omitempty"`
}
