package models

import "gorm.io/datatypes"

// ImageBlob is an inline image carried as a base64 data URL.
type ImageBlob struct {
	Name string `json:"name"`
	Data string `json:"data"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// ImageList is stored as a JSON column.
type ImageList = datatypes.JSONSlice[ImageBlob]

// DataURLs returns the data URL of every blob in order.
func DataURLs(images []ImageBlob) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img.Data != "" {
			out = append(out, img.Data)
		}
	}
	return out
}
