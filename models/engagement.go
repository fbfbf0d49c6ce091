package models

// LikeResponse reports the like state of a design for the current visitor
type LikeResponse struct {
	DesignID int64 `json:"designId"`
	Liked    bool  `json:"liked"`
	Likes    int   `json:"likes"`
}

// SaveResponse reports the saved state of a design for the current visitor
type SaveResponse struct {
	DesignID int64 `json:"designId"`
	Saved    bool  `json:"saved"`
}

// ViewResponse is returned after recording a view
type ViewResponse struct {
	DesignID int64 `json:"designId"`
	Views    int   `json:"views"`
}
