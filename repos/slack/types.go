package slack

// Message is the webhook payload. Link unfurling is always off so the
// footer link does not expand into a preview card.
type Message struct {
	Text        string `json:"text"`
	UnfurlLinks bool   `json:"unfurl_links"`
	UnfurlMedia bool   `json:"unfurl_media"`
}
