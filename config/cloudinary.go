package config

import "github.com/cloudinary/cloudinary-go/v2"

// ConnectCloudinary returns nil when CLOUDINARY_URL is unset; image upload is
// then reported as unavailable.
func ConnectCloudinary(url string) (*cloudinary.Cloudinary, error) {
	if url == "" {
		return nil, nil
	}
	return cloudinary.NewFromURL(url)
}
