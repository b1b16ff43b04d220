package domain

// TrackTags are the metadata tags embedded in an uploaded file, if any.
type TrackTags struct {
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
	Genre  string `json:"genre,omitempty"`
	Format string `json:"format,omitempty"`
}

// Empty reports whether no tag was found.
func (t TrackTags) Empty() bool {
	return t == TrackTags{}
}
