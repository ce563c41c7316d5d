package photo

import "time"

type SubmitInput struct {
	// Path to a file already staged on local disk by the upload layer.
	StagedPath       string
	Contributor      string
	FloorID          string
	RoomID           string
	OriginalFileName string
}

type ListFilter struct {
	// Empty strings mean "no filter".
	Status  string
	FloorID string
}

type PhotoDTO struct {
	PhotoID          string     `json:"photo_id"`
	Contributor      string     `json:"contributor"`
	Date             string     `json:"date"`
	FloorID          string     `json:"floor_id"`
	RoomID           string     `json:"room_id,omitempty"`
	ImageHostID      string     `json:"image_host_id"`
	ImageURL         string     `json:"image_url"`
	OriginalFileName string     `json:"original_file_name,omitempty"`
	Status           string     `json:"status"`
	SubmittedAt      time.Time  `json:"submitted_at"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
}
