package sync

import "medisync/internal/domain/feed"

type pullInput struct {
	Limit        int    `query:"limit" minimum:"1" maximum:"1000" default:"50"`
	ProcessToken string `query:"process_token"`
}

// The pull response body is assembled by hand because its field key varies
// per entity ({"patients": [...]}, {"facilities": [...]}, ...).
type pullOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

type pushInput struct {
	RawBody []byte
}

type pushOutput struct {
	Body PushResponse
}

type PushResponse struct {
	Errors []feed.RecordError `json:"errors,omitempty"`
}
