package generate

import "time"

// RequestOptions carry transport-level settings for a single call: where the
// request goes and how long it may take. A chat session holds a base set and
// callers may override per send; later values win field by field.
type RequestOptions struct {
	Timeout    time.Duration     `json:"timeout,omitempty"`
	APIVersion string            `json:"api_version,omitempty"`
	BaseURL    string            `json:"base_url,omitempty"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Merge overlays non-zero fields from source onto o. Headers merge key by
// key rather than wholesale, so a per-call header does not discard the
// session's base headers.
func (o *RequestOptions) Merge(source *RequestOptions) {
	if source == nil {
		return
	}
	if source.Timeout > 0 {
		o.Timeout = source.Timeout
	}
	if source.APIVersion != "" {
		o.APIVersion = source.APIVersion
	}
	if source.BaseURL != "" {
		o.BaseURL = source.BaseURL
	}
	for k, v := range source.Headers {
		if o.Headers == nil {
			o.Headers = make(map[string]string, len(source.Headers))
		}
		o.Headers[k] = v
	}
}
