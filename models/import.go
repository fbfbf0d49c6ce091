package models

// DriveImage is an image file found in a Google Drive folder
type DriveImage struct {
	DriveFileID string `json:"driveFileId"`
	FileName    string `json:"fileName"`
	ImageURL    string `json:"imageUrl"`
}

// ImportResult summarizes a Drive import run
type ImportResult struct {
	Inserted int          `json:"inserted"`
	Skipped  int          `json:"skipped"`
	Total    int          `json:"total"`
	Images   []DriveImage `json:"images"`
}
