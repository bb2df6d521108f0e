package models

import "encoding/json"

// VideoInfo holds the YouTube metadata of a video
type VideoInfo struct {
	ID                   string `json:"id"`
	Title                string `json:"title"`
	ChannelTitle         string `json:"channel_title"`
	Duration             string `json:"duration"`
	DefaultLanguage      string `json:"default_language,omitempty"`
	DefaultAudioLanguage string `json:"default_audio_language,omitempty"`
	HasCaptions          bool   `json:"has_captions"`
}

// MarshalBinary implements the encoding.BinaryMarshaler interface
func (v VideoInfo) MarshalBinary() (data []byte, err error) {
	return json.Marshal(v)
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface
func (v *VideoInfo) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, v)
}

// JSONErrorData is the body of every JSON error response
type JSONErrorData struct {
	Error string `json:"error"`
}
