package models

import "time"

type UserRequest struct {
	Method    string    `json:"method"`
	Route     string    `json:"route"`
	RequestId string    `json:"request_id"`
	Time      time.Time `json:"time"`
}

// ActivityParams is the path schema of /activity/:username.
type ActivityParams struct {
	Username string `uri:"username" binding:"required" description:"The user whose recent requests are listed"`
}
