package entity

// Banner imagen promocional de la portada.
type Banner struct {
	ID       string
	Title    string
	Image    Image
	ImageURL string
}
