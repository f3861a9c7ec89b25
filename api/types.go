package api

import (
	"hostforge/core/generator"
	"hostforge/core/validator"
)

// HostnameRequest carries one hostname
type HostnameRequest struct {
	Hostname string `json:"hostname"`
}

// HostnamesRequest carries a list of hostnames
type HostnamesRequest struct {
	Hostnames []string `json:"hostnames"`
}

// EntryRequest adds a catalog entry
type EntryRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// NextResponse is the answer to GET /api/sectors/:sector/next
type NextResponse struct {
	Sector  string `json:"sector"`
	Next    int    `json:"next"`
	Preview []int  `json:"preview,omitempty"`
}

// DecodeResponse is the answer to GET /api/decode/:hostname
type DecodeResponse struct {
	*generator.Decoded
	Complete  bool `json:"complete"`
	Allocated bool `json:"allocated"`
}

// EncodeResponse is the answer to POST /api/encode
type EncodeResponse struct {
	Hostname  string `json:"hostname"`
	Allocated bool   `json:"allocated"`
}

// ValidateResponse is one validation report
type ValidateResponse struct {
	Hostname string `json:"hostname"`
	validator.Report
}

// BatchValidateResponse holds per-hostname reports and a tally
type BatchValidateResponse struct {
	Results []validator.Result `json:"results"`
	Valid   int                `json:"valid"`
	Invalid int                `json:"invalid"`
}

// DuplicatesResponse lists repeated hostnames
type DuplicatesResponse struct {
	Duplicates []validator.Duplicate `json:"duplicates"`
	Count      int                   `json:"count"`
}

// SuggestionsResponse lists suggestions for a hostname
type SuggestionsResponse struct {
	Hostname    string   `json:"hostname"`
	Suggestions []string `json:"suggestions"`
}
